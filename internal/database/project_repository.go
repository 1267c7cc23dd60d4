package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"suivi/internal/models"
)

// ProjectRepo handles all project- and product-related database operations.
type ProjectRepo struct {
	db *sql.DB
}

// Create inserts a project and returns it.
func (r *ProjectRepo) Create(ctx context.Context, name, description string) (*models.Project, error) {
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO projects (name, description) VALUES (?, ?)`,
		name, nullableString(description),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert project %q: %w", name, err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, int(id))
}

// GetByID retrieves one project.
func (r *ProjectRepo) GetByID(ctx context.Context, id int) (*models.Project, error) {
	return r.getBy(ctx, `WHERE id = ?`, id)
}

// GetByName retrieves one project by its unique name.
func (r *ProjectRepo) GetByName(ctx context.Context, name string) (*models.Project, error) {
	return r.getBy(ctx, `WHERE name = ?`, name)
}

func (r *ProjectRepo) getBy(ctx context.Context, where string, arg any) (*models.Project, error) {
	project := &models.Project{}
	var description sql.NullString
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, description, created_at FROM projects `+where, arg,
	).Scan(&project.ID, &project.Name, &description, &project.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, err
	}
	project.Description = description.String
	return project, nil
}

// List retrieves every project in name order.
func (r *ProjectRepo) List(ctx context.Context) ([]models.Project, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, description, created_at FROM projects ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	projects := []models.Project{}
	for rows.Next() {
		var project models.Project
		var description sql.NullString
		if err := rows.Scan(&project.ID, &project.Name, &description, &project.CreatedAt); err != nil {
			return nil, err
		}
		project.Description = description.String
		projects = append(projects, project)
	}
	return projects, rows.Err()
}

// Update replaces a project's name and description.
func (r *ProjectRepo) Update(ctx context.Context, id int, name, description string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE projects SET name = ?, description = ? WHERE id = ?`,
		name, nullableString(description), id,
	)
	if err != nil {
		return err
	}
	return requireAffected(result)
}

// Delete removes a project; its products cascade.
func (r *ProjectRepo) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM projects WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireAffected(result)
}

// CreateProduct inserts a product under a project.
func (r *ProjectRepo) CreateProduct(ctx context.Context, projectID int, name string) (*models.Product, error) {
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO products (project_id, name) VALUES (?, ?)`,
		projectID, name,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert product %q: %w", name, err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, err
	}
	return r.GetProduct(ctx, int(id))
}

// GetProduct retrieves one product with its project attached.
func (r *ProjectRepo) GetProduct(ctx context.Context, id int) (*models.Product, error) {
	product := &models.Product{Project: &models.Project{}}
	var description sql.NullString
	err := r.db.QueryRowContext(ctx,
		`SELECT p.id, p.name, pr.id, pr.name, pr.description, pr.created_at
		 FROM products p
		 JOIN projects pr ON pr.id = p.project_id
		 WHERE p.id = ?`, id,
	).Scan(&product.ID, &product.Name,
		&product.Project.ID, &product.Project.Name, &description, &product.Project.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, err
	}
	product.Project.Description = description.String
	return product, nil
}

// ListProducts retrieves a project's products in name order.
func (r *ProjectRepo) ListProducts(ctx context.Context, projectID int) ([]models.Product, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name FROM products WHERE project_id = ? ORDER BY name`, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products := []models.Product{}
	for rows.Next() {
		var product models.Product
		if err := rows.Scan(&product.ID, &product.Name); err != nil {
			return nil, err
		}
		products = append(products, product)
	}
	return products, rows.Err()
}

// DeleteProduct removes a product; task links cascade.
func (r *ProjectRepo) DeleteProduct(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireAffected(result)
}

// requireAffected maps "no rows affected" to models.ErrNotFound.
func requireAffected(result sql.Result) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return models.ErrNotFound
	}
	return nil
}
