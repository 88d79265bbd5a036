package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestValidClaimType(t *testing.T) {
	t.Parallel()

	require.True(t, ValidClaimType("INDISPONIBILIDAD DEL SERVICIO"))
	require.True(t, ValidClaimType("NO PROCEDENTES"))
	require.False(t, ValidClaimType("indisponibilidad del servicio"))
	require.False(t, ValidClaimType("ALGO INVENTADO"))
	require.False(t, ValidClaimType(""))
}

func TestCategoryOf(t *testing.T) {
	t.Parallel()

	require.Equal(t, CategoryRepairs, CategoryOf("DEGRADACIÓN DEL SERVICIO"))
	require.Equal(t, CategoryGeneral, CategoryOf("INCUMPLIMIENTO DE LAS CLÁUSULAS CONTRACTUALES PACTADAS"))
	require.Equal(t, CategoryOther, CategoryOf("CAPACIDAD DE CANAL"))
	require.Equal(t, CategoryUnlisted, CategoryOf("ALGO INVENTADO"))
}

func TestClaimTypesFor(t *testing.T) {
	t.Parallel()

	repairs := ClaimTypesFor(CategoryRepairs)
	require.Len(t, repairs, 5)
	for _, tipo := range repairs {
		require.Equal(t, CategoryRepairs, CategoryOf(tipo))
	}

	general := ClaimTypesFor(CategoryGeneral)
	require.Len(t, general, 5)

	other := ClaimTypesFor(CategoryOther)
	require.Len(t, other, 2)

	all := ClaimTypesFor(CategoryUnlisted)
	require.Len(t, all, 12)
}

func TestValidChannel(t *testing.T) {
	t.Parallel()

	for _, canal := range []ClaimChannel{ChannelInPerson, ChannelPhone, ChannelLetter, ChannelEmail, ChannelWeb} {
		require.True(t, ValidChannel(canal))
	}
	require.False(t, ValidChannel("FAX"))
	require.False(t, ValidChannel(""))
}

func TestSpanishMonth(t *testing.T) {
	t.Parallel()

	require.Equal(t, "Enero", SpanishMonth(time.January))
	require.Equal(t, "Agosto", SpanishMonth(time.August))
	require.Equal(t, "Diciembre", SpanishMonth(time.December))
	require.Equal(t, "", SpanishMonth(time.Month(0)))
	require.Equal(t, "", SpanishMonth(time.Month(13)))
}

func TestResolutionHours(t *testing.T) {
	t.Parallel()

	registro := time.Date(2025, time.March, 10, 8, 0, 0, 0, time.UTC)

	require.Equal(t, 2.0, ResolutionHours(registro, registro.Add(2*time.Hour)))
	require.Equal(t, 0.5, ResolutionHours(registro, registro.Add(30*time.Minute)))
	require.Equal(t, 26.25, ResolutionHours(registro, registro.Add(26*time.Hour+15*time.Minute)))
	// 100 minutes is 1.666... hours, rounded to two decimals.
	require.Equal(t, 1.67, ResolutionHours(registro, registro.Add(100*time.Minute)))
	require.Equal(t, 0.0, ResolutionHours(registro, registro))
}
