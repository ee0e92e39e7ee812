package postgres

import (
	"context"
	"database/sql"
	"time"

	"registrar-portal-backend/internal/domain"
	"registrar-portal-backend/internal/repository"
)

type departmentRepository struct {
	db *sql.DB
}

func NewDepartmentRepository(db *sql.DB) repository.DepartmentRepository {
	return &departmentRepository{db: db}
}

func (r *departmentRepository) Create(ctx context.Context, dept *domain.Department) error {
	query := `INSERT INTO departments (name, deleted, created_on) VALUES ($1, false, $2) RETURNING id`
	return storeErr(r.db.QueryRowContext(ctx, query, dept.Name, time.Now()).Scan(&dept.ID))
}

func (r *departmentRepository) GetByID(ctx context.Context, id int32) (*domain.Department, error) {
	d := &domain.Department{}
	query := `SELECT id, name, deleted, created_on FROM departments WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&d.ID, &d.Name, &d.Deleted, &d.CreatedOn)
	if err != nil {
		return nil, storeErr(err)
	}
	return d, nil
}

func (r *departmentRepository) Update(ctx context.Context, dept *domain.Department) error {
	_, err := r.db.ExecContext(ctx, `UPDATE departments SET name=$1 WHERE id=$2`, dept.Name, dept.ID)
	return storeErr(err)
}

func (r *departmentRepository) SoftDelete(ctx context.Context, id int32) error {
	_, err := r.db.ExecContext(ctx, `UPDATE departments SET deleted=true WHERE id=$1`, id)
	return storeErr(err)
}

func (r *departmentRepository) List(ctx context.Context) ([]domain.Department, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, deleted, created_on FROM departments WHERE deleted = false ORDER BY name`)
	if err != nil {
		return nil, storeErr(err)
	}
	defer rows.Close()

	var depts []domain.Department
	for rows.Next() {
		var d domain.Department
		if err := rows.Scan(&d.ID, &d.Name, &d.Deleted, &d.CreatedOn); err != nil {
			return nil, storeErr(err)
		}
		depts = append(depts, d)
	}
	return depts, nil
}

type credentialRepository struct {
	db *sql.DB
}

func NewCredentialRepository(db *sql.DB) repository.CredentialRepository {
	return &credentialRepository{db: db}
}

func (r *credentialRepository) Create(ctx context.Context, cred *domain.Credential) error {
	query := `INSERT INTO credentials (name, department_id, price_cents, deleted, created_on) VALUES ($1, $2, $3, false, $4) RETURNING id`
	return storeErr(r.db.QueryRowContext(ctx, query, cred.Name, cred.DepartmentID, cred.PriceCents, time.Now()).Scan(&cred.ID))
}

func (r *credentialRepository) GetByID(ctx context.Context, id int32) (*domain.Credential, error) {
	c := &domain.Credential{}
	query := `SELECT id, name, department_id, price_cents, deleted, created_on FROM credentials WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&c.ID, &c.Name, &c.DepartmentID, &c.PriceCents, &c.Deleted, &c.CreatedOn)
	if err != nil {
		return nil, storeErr(err)
	}
	return c, nil
}

func (r *credentialRepository) Update(ctx context.Context, cred *domain.Credential) error {
	_, err := r.db.ExecContext(ctx, `UPDATE credentials SET name=$1, department_id=$2, price_cents=$3 WHERE id=$4`,
		cred.Name, cred.DepartmentID, cred.PriceCents, cred.ID)
	return storeErr(err)
}

func (r *credentialRepository) SoftDelete(ctx context.Context, id int32) error {
	_, err := r.db.ExecContext(ctx, `UPDATE credentials SET deleted=true WHERE id=$1`, id)
	return storeErr(err)
}

func (r *credentialRepository) List(ctx context.Context) ([]domain.Credential, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, department_id, price_cents, deleted, created_on FROM credentials WHERE deleted = false ORDER BY name`)
	if err != nil {
		return nil, storeErr(err)
	}
	defer rows.Close()

	var creds []domain.Credential
	for rows.Next() {
		var c domain.Credential
		if err := rows.Scan(&c.ID, &c.Name, &c.DepartmentID, &c.PriceCents, &c.Deleted, &c.CreatedOn); err != nil {
			return nil, storeErr(err)
		}
		creds = append(creds, c)
	}
	return creds, nil
}

type packageRepository struct {
	db *sql.DB
}

func NewPackageRepository(db *sql.DB) repository.PackageRepository {
	return &packageRepository{db: db}
}

func (r *packageRepository) Create(ctx context.Context, pkg *domain.Package) error {
	dbTx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return storeErr(err)
	}
	defer dbTx.Rollback()

	query := `INSERT INTO packages (name, price_cents, deleted, created_on) VALUES ($1, $2, false, $3) RETURNING id`
	if err := dbTx.QueryRowContext(ctx, query, pkg.Name, pkg.PriceCents, time.Now()).Scan(&pkg.ID); err != nil {
		return storeErr(err)
	}
	for i := range pkg.Items {
		pkg.Items[i].PackageID = pkg.ID
		_, err := dbTx.ExecContext(ctx,
			`INSERT INTO package_items (package_id, credential_id, quantity) VALUES ($1, $2, $3)`,
			pkg.ID, pkg.Items[i].CredentialID, pkg.Items[i].Quantity)
		if err != nil {
			return storeErr(err)
		}
	}
	return storeErr(dbTx.Commit())
}

func (r *packageRepository) GetByID(ctx context.Context, id int32) (*domain.Package, error) {
	p := &domain.Package{}
	query := `SELECT id, name, price_cents, deleted, created_on FROM packages WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&p.ID, &p.Name, &p.PriceCents, &p.Deleted, &p.CreatedOn)
	if err != nil {
		return nil, storeErr(err)
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT package_id, credential_id, quantity FROM package_items WHERE package_id = $1`, id)
	if err != nil {
		return nil, storeErr(err)
	}
	defer rows.Close()

	for rows.Next() {
		var item domain.PackageItem
		if err := rows.Scan(&item.PackageID, &item.CredentialID, &item.Quantity); err != nil {
			return nil, storeErr(err)
		}
		p.Items = append(p.Items, item)
	}
	return p, nil
}

func (r *packageRepository) Update(ctx context.Context, pkg *domain.Package) error {
	dbTx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return storeErr(err)
	}
	defer dbTx.Rollback()

	_, err = dbTx.ExecContext(ctx, `UPDATE packages SET name=$1, price_cents=$2 WHERE id=$3`, pkg.Name, pkg.PriceCents, pkg.ID)
	if err != nil {
		return storeErr(err)
	}
	if _, err := dbTx.ExecContext(ctx, `DELETE FROM package_items WHERE package_id=$1`, pkg.ID); err != nil {
		return storeErr(err)
	}
	for _, item := range pkg.Items {
		_, err := dbTx.ExecContext(ctx,
			`INSERT INTO package_items (package_id, credential_id, quantity) VALUES ($1, $2, $3)`,
			pkg.ID, item.CredentialID, item.Quantity)
		if err != nil {
			return storeErr(err)
		}
	}
	return storeErr(dbTx.Commit())
}

func (r *packageRepository) SoftDelete(ctx context.Context, id int32) error {
	_, err := r.db.ExecContext(ctx, `UPDATE packages SET deleted=true WHERE id=$1`, id)
	return storeErr(err)
}

func (r *packageRepository) List(ctx context.Context) ([]domain.Package, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, price_cents, deleted, created_on FROM packages WHERE deleted = false ORDER BY name`)
	if err != nil {
		return nil, storeErr(err)
	}
	defer rows.Close()

	var pkgs []domain.Package
	for rows.Next() {
		var p domain.Package
		if err := rows.Scan(&p.ID, &p.Name, &p.PriceCents, &p.Deleted, &p.CreatedOn); err != nil {
			return nil, storeErr(err)
		}
		pkgs = append(pkgs, p)
	}
	return pkgs, nil
}
