package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/eandradeg/alltelapp/internal/domain"
)

// ClientRepository defines persistence access for subscribers.
type ClientRepository interface {
	// Create persists the client, allocating its per-reseller codigo
	// inside the same transaction.
	Create(ctx context.Context, client *domain.Client) error
	Update(ctx context.Context, client *domain.Client) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.Client, error)
	ListByPermisionario(ctx context.Context, permisionario string) ([]domain.Client, error)
	// Search matches name, combined display name, cedula/RUC or email
	// within one reseller's directory.
	Search(ctx context.Context, permisionario, term string) ([]domain.Client, error)
}

type clientRepository struct {
	pool *pgxpool.Pool
}

// NewClientRepository returns a Postgres-backed implementation.
func NewClientRepository(pool *pgxpool.Pool) ClientRepository {
	return &clientRepository{pool: pool}
}

const clientColumns = `id, permisionario, codigo, nombres, apellidos, cliente, cedula_ruc,
               servicio_contratado, plan_contratado, provincia, ciudad, direccion, telefono,
               correo, fecha_de_inscripcion, estado, ip, created_at, updated_at`

func (r *clientRepository) Create(ctx context.Context, client *domain.Client) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	seq, err := NextSequence(ctx, tx, ScopeClientCodigo, client.Permisionario)
	if err != nil {
		return err
	}
	client.Codigo = fmt.Sprintf("%04d", seq)

	const query = `
        INSERT INTO clients (permisionario, codigo, nombres, apellidos, cliente, cedula_ruc,
            servicio_contratado, plan_contratado, provincia, ciudad, direccion, telefono,
            correo, fecha_de_inscripcion, estado, ip)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16)
        RETURNING id, created_at, updated_at`
	if err := tx.QueryRow(ctx, query,
		client.Permisionario,
		client.Codigo,
		client.Nombres,
		client.Apellidos,
		client.Cliente,
		client.CedulaRUC,
		client.ServicioContratado,
		client.PlanContratado,
		client.Provincia,
		client.Ciudad,
		client.Direccion,
		client.Telefono,
		client.Correo,
		client.FechaInscripcion,
		client.Estado,
		client.IP,
	).Scan(&client.ID, &client.CreatedAt, &client.UpdatedAt); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *clientRepository) Update(ctx context.Context, client *domain.Client) error {
	const query = `
        UPDATE clients SET nombres=$1, apellidos=$2, cliente=$3, cedula_ruc=$4,
            servicio_contratado=$5, plan_contratado=$6, provincia=$7, ciudad=$8, direccion=$9,
            telefono=$10, correo=$11, fecha_de_inscripcion=$12, estado=$13, ip=$14, updated_at=NOW()
        WHERE id=$15`
	cmd, err := r.pool.Exec(ctx, query,
		client.Nombres,
		client.Apellidos,
		client.Cliente,
		client.CedulaRUC,
		client.ServicioContratado,
		client.PlanContratado,
		client.Provincia,
		client.Ciudad,
		client.Direccion,
		client.Telefono,
		client.Correo,
		client.FechaInscripcion,
		client.Estado,
		client.IP,
		client.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *clientRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM clients WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *clientRepository) GetByID(ctx context.Context, id string) (*domain.Client, error) {
	query := fmt.Sprintf(`SELECT %s FROM clients WHERE id=$1`, clientColumns)
	var client domain.Client
	if err := r.pool.QueryRow(ctx, query, id).Scan(clientFields(&client)...); err != nil {
		return nil, err
	}
	return &client, nil
}

func (r *clientRepository) ListByPermisionario(ctx context.Context, permisionario string) ([]domain.Client, error) {
	query := fmt.Sprintf(`SELECT %s FROM clients WHERE permisionario=$1 ORDER BY codigo ASC`, clientColumns)
	rows, err := r.pool.Query(ctx, query, permisionario)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanClients(rows)
}

func (r *clientRepository) Search(ctx context.Context, permisionario, term string) ([]domain.Client, error) {
	pattern := "%" + strings.ToLower(strings.TrimSpace(term)) + "%"
	query := fmt.Sprintf(`SELECT %s FROM clients
        WHERE permisionario=$1
          AND (LOWER(nombres) LIKE $2 OR LOWER(cliente) LIKE $2 OR LOWER(cedula_ruc) LIKE $2 OR LOWER(correo) LIKE $2)
        ORDER BY codigo ASC`, clientColumns)
	rows, err := r.pool.Query(ctx, query, permisionario, pattern)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanClients(rows)
}

func clientFields(client *domain.Client) []any {
	return []any{
		&client.ID,
		&client.Permisionario,
		&client.Codigo,
		&client.Nombres,
		&client.Apellidos,
		&client.Cliente,
		&client.CedulaRUC,
		&client.ServicioContratado,
		&client.PlanContratado,
		&client.Provincia,
		&client.Ciudad,
		&client.Direccion,
		&client.Telefono,
		&client.Correo,
		&client.FechaInscripcion,
		&client.Estado,
		&client.IP,
		&client.CreatedAt,
		&client.UpdatedAt,
	}
}

func scanClients(rows pgx.Rows) ([]domain.Client, error) {
	var result []domain.Client
	for rows.Next() {
		var client domain.Client
		if err := rows.Scan(clientFields(&client)...); err != nil {
			return nil, err
		}
		result = append(result, client)
	}
	return result, rows.Err()
}
