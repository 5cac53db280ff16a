package postgres

import (
	"database/sql"
	"eventops-backend/internal/repository"

	_ "github.com/lib/pq"
)

type Store struct {
	db *sql.DB
	repository.AttendeeRepository
	repository.DispatchRepository
	repository.DeletionRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                 db,
		AttendeeRepository: NewAttendeeRepository(db),
		DispatchRepository: NewDispatchRepository(db),
		DeletionRepository: NewDeletionRepository(db),
	}
}
