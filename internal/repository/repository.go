package repository

import (
	"context"

	"gorm.io/gorm"
)

// Repository groups every repository.
type Repository struct {
	Worker     WorkerRepository
	Job        JobRepository
	Assignment AssignmentRepository
	Tx         Transactor
}

// Transactor runs fn with repositories bound to a single transaction.
// Returning an error from fn rolls the transaction back.
type Transactor interface {
	Transaction(ctx context.Context, fn func(repo *Repository) error) error
}

// NewRepository creates the repository group.
func NewRepository(db *gorm.DB) *Repository {
	repo := bind(db)
	repo.Tx = &gormTransactor{db: db}
	return repo
}

func bind(db *gorm.DB) *Repository {
	return &Repository{
		Worker:     NewWorkerRepo(db),
		Job:        NewJobRepo(db),
		Assignment: NewAssignmentRepo(db),
	}
}

type gormTransactor struct {
	db *gorm.DB
}

func (t *gormTransactor) Transaction(ctx context.Context, fn func(repo *Repository) error) error {
	return t.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := bind(tx)
		repo.Tx = &gormTransactor{db: tx}
		return fn(repo)
	})
}
