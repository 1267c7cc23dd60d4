package database

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"golang.org/x/crypto/bcrypt"

	"suivi/internal/models"
)

// Seed populates an empty database with the default admin account and a
// small set of demo projects, tasks and interventions. Running it against
// a database that already has users is a no-op.
func Seed(ctx context.Context, repo *Repository) error {
	users, err := repo.ListUsers(ctx)
	if err != nil {
		return err
	}
	if len(users) > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("123.321A"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}
	admin, err := repo.CreateUser(ctx, "admin", "admin@gmail.com", string(hash), models.RoleAdmin)
	if err != nil {
		return fmt.Errorf("failed to create admin: %w", err)
	}

	demoUsers := make([]*models.User, 0, 3)
	for _, u := range []struct{ name, email string }{
		{"Alice Martin", "alice@example.com"},
		{"Bruno Leroy", "bruno@example.com"},
		{"Chloe Dubois", "chloe@example.com"},
	} {
		hash, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		user, err := repo.CreateUser(ctx, u.name, u.email, string(hash), models.RoleUser)
		if err != nil {
			return fmt.Errorf("failed to create user %q: %w", u.email, err)
		}
		demoUsers = append(demoUsers, user)
	}

	productIDs := []int{}
	for _, p := range []struct {
		name        string
		description string
		products    []string
	}{
		{"Fibre", "Deploiement fibre optique", []string{"FTTH", "FTTB"}},
		{"Mobile", "Reseau mobile", []string{"4G", "5G"}},
		{"Support", "Support client", []string{"Hotline"}},
	} {
		project, err := repo.CreateProject(ctx, p.name, p.description)
		if err != nil {
			return fmt.Errorf("failed to create project %q: %w", p.name, err)
		}
		for _, name := range p.products {
			product, err := repo.CreateProduct(ctx, project.ID, name)
			if err != nil {
				return err
			}
			productIDs = append(productIDs, product.ID)
		}
	}

	rng := rand.New(rand.NewSource(1))
	now := time.Now()
	for i := 0; i < 30; i++ {
		assignee := demoUsers[rng.Intn(len(demoUsers))]
		due := now.AddDate(0, 0, rng.Intn(60)-10)
		task, err := repo.CreateTask(ctx, CreateTaskParams{
			Name:           fmt.Sprintf("Ticket %d", i+1),
			Description:    "Ticket de demonstration",
			Status:         models.TaskStatuses[rng.Intn(len(models.TaskStatuses))],
			Priority:       []string{models.PriorityLow, models.PriorityMedium, models.PriorityHigh}[rng.Intn(3)],
			DueDate:        &due,
			AssignedUserID: assignee.ID,
			CreatedBy:      admin.ID,
			ProductIDs:     []int{productIDs[rng.Intn(len(productIDs))]},
		})
		if err != nil {
			return fmt.Errorf("failed to seed task %d: %w", i+1, err)
		}
		if task.Status == models.StatusCompleted {
			if err := repo.UpdateTaskStatus(ctx, task.ID, models.StatusCompleted, admin.ID); err != nil {
				return err
			}
		}
		if rng.Intn(2) == 0 {
			intervention, err := repo.CreateIntervention(ctx, task.ID, assignee.ID, "Intervention de demonstration")
			if err != nil {
				return err
			}
			statuses := []string{models.InterventionPending, models.InterventionApproved, models.InterventionRefused}
			if status := statuses[rng.Intn(3)]; status != models.InterventionPending {
				if err := repo.UpdateInterventionStatus(ctx, intervention.ID, status); err != nil {
					return err
				}
			}
		}
	}
	return nil
}
