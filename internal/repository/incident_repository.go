package repository

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/eandradeg/alltelapp/internal/domain"
)

// IncidentFilter captures ledger search parameters. Permisionario is
// mandatory; the rest narrow the result set.
type IncidentFilter struct {
	Permisionario string
	// SearchTerm matches the complainant name (substring, case
	// insensitive) or the item number exactly.
	SearchTerm  string
	PendingOnly bool
	Mes         string
	Category    domain.ClaimCategory
	TipoReclamo string
	Limit       int
	Offset      int
}

// IncidentRepository encapsulates incident ledger persistence.
type IncidentRepository interface {
	// Create persists the incident and assigns its item number from the
	// per-reseller counter inside a single transaction.
	Create(ctx context.Context, incident *domain.Incident) error
	Update(ctx context.Context, incident *domain.Incident) error
	GetByItem(ctx context.Context, permisionario string, item int) (*domain.Incident, error)
	ListWithFilter(ctx context.Context, filter IncidentFilter) ([]domain.Incident, error)
}

type incidentRepository struct {
	pool *pgxpool.Pool
}

// NewIncidentRepository instantiates repository.
func NewIncidentRepository(pool *pgxpool.Pool) IncidentRepository {
	return &incidentRepository{pool: pool}
}

const incidentColumns = `id, item, permisionario, provincia, mes, fecha_hora_registro,
               nombre_reclamante, telefono_contacto, tipo_conexion, tipo_reclamo, canal_reclamo,
               estado_incidencia, descripcion_incidencia, descripcion_solucion,
               fecha_hora_solucion, tiempo_resolucion_horas, created_at, updated_at`

func (r *incidentRepository) Create(ctx context.Context, incident *domain.Incident) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	item, err := NextSequence(ctx, tx, ScopeIncidentItem, incident.Permisionario)
	if err != nil {
		return err
	}
	incident.Item = item

	const query = `
        INSERT INTO incidents (item, permisionario, provincia, mes, fecha_hora_registro,
            nombre_reclamante, telefono_contacto, tipo_conexion, tipo_reclamo, canal_reclamo,
            estado_incidencia, descripcion_incidencia, descripcion_solucion)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
        RETURNING id, created_at, updated_at`
	if err := tx.QueryRow(ctx, query,
		incident.Item,
		incident.Permisionario,
		incident.Provincia,
		incident.Mes,
		incident.FechaHoraRegistro,
		incident.NombreReclamante,
		incident.TelefonoContacto,
		incident.TipoConexion,
		incident.TipoReclamo,
		incident.CanalReclamo,
		incident.Estado,
		incident.DescripcionIncidencia,
		incident.DescripcionSolucion,
	).Scan(&incident.ID, &incident.CreatedAt, &incident.UpdatedAt); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *incidentRepository) Update(ctx context.Context, incident *domain.Incident) error {
	const query = `
        UPDATE incidents SET estado_incidencia=$1, descripcion_incidencia=$2, descripcion_solucion=$3,
            fecha_hora_solucion=$4, tiempo_resolucion_horas=$5, updated_at=NOW()
        WHERE id=$6`
	cmd, err := r.pool.Exec(ctx, query,
		incident.Estado,
		incident.DescripcionIncidencia,
		incident.DescripcionSolucion,
		incident.FechaHoraSolucion,
		incident.TiempoResolucionHoras,
		incident.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *incidentRepository) GetByItem(ctx context.Context, permisionario string, item int) (*domain.Incident, error) {
	query := fmt.Sprintf(`SELECT %s FROM incidents WHERE permisionario=$1 AND item=$2`, incidentColumns)
	var incident domain.Incident
	if err := r.pool.QueryRow(ctx, query, permisionario, item).Scan(incidentFields(&incident)...); err != nil {
		return nil, err
	}
	return &incident, nil
}

func (r *incidentRepository) ListWithFilter(ctx context.Context, filter IncidentFilter) ([]domain.Incident, error) {
	clauses := []string{"permisionario=$1"}
	args := []any{filter.Permisionario}

	if term := strings.TrimSpace(filter.SearchTerm); term != "" {
		if item, err := strconv.Atoi(term); err == nil {
			args = append(args, "%"+strings.ToLower(term)+"%", item)
			clauses = append(clauses, fmt.Sprintf("(LOWER(nombre_reclamante) LIKE $%d OR item=$%d)", len(args)-1, len(args)))
		} else {
			args = append(args, "%"+strings.ToLower(term)+"%")
			clauses = append(clauses, fmt.Sprintf("LOWER(nombre_reclamante) LIKE $%d", len(args)))
		}
	}
	if filter.PendingOnly {
		args = append(args, domain.IncidentStatusPending)
		clauses = append(clauses, fmt.Sprintf("estado_incidencia=$%d", len(args)))
	}
	if filter.Mes != "" {
		args = append(args, filter.Mes)
		clauses = append(clauses, fmt.Sprintf("mes=$%d", len(args)))
	}
	if filter.TipoReclamo != "" {
		args = append(args, filter.TipoReclamo)
		clauses = append(clauses, fmt.Sprintf("tipo_reclamo=$%d", len(args)))
	} else if filter.Category != domain.CategoryUnlisted {
		types := domain.ClaimTypesFor(filter.Category)
		placeholders := make([]string, len(types))
		for i, tipo := range types {
			args = append(args, tipo)
			placeholders[i] = fmt.Sprintf("$%d", len(args))
		}
		clauses = append(clauses, fmt.Sprintf("tipo_reclamo IN (%s)", strings.Join(placeholders, ",")))
	}

	query := fmt.Sprintf(`SELECT %s FROM incidents WHERE %s ORDER BY item ASC`,
		incidentColumns, strings.Join(clauses, " AND "))
	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", filter.Limit)
	}
	if filter.Offset > 0 {
		query += fmt.Sprintf(" OFFSET %d", filter.Offset)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanIncidents(rows)
}

func incidentFields(incident *domain.Incident) []any {
	return []any{
		&incident.ID,
		&incident.Item,
		&incident.Permisionario,
		&incident.Provincia,
		&incident.Mes,
		&incident.FechaHoraRegistro,
		&incident.NombreReclamante,
		&incident.TelefonoContacto,
		&incident.TipoConexion,
		&incident.TipoReclamo,
		&incident.CanalReclamo,
		&incident.Estado,
		&incident.DescripcionIncidencia,
		&incident.DescripcionSolucion,
		&incident.FechaHoraSolucion,
		&incident.TiempoResolucionHoras,
		&incident.CreatedAt,
		&incident.UpdatedAt,
	}
}

func scanIncidents(rows pgx.Rows) ([]domain.Incident, error) {
	var result []domain.Incident
	for rows.Next() {
		var incident domain.Incident
		if err := rows.Scan(incidentFields(&incident)...); err != nil {
			return nil, err
		}
		result = append(result, incident)
	}
	return result, rows.Err()
}
