package repository

import (
	"context"
	"fmt"
	"time"

	"lovesync-backend/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

// MemoryRepository handles database operations for memory photos
type MemoryRepository struct {
	db *pgxpool.Pool
}

// NewMemoryRepository creates a new memory repository
func NewMemoryRepository(db *pgxpool.Pool) *MemoryRepository {
	return &MemoryRepository{db: db}
}

// Create creates a new memory
func (r *MemoryRepository) Create(ctx context.Context, memory *models.Memory) error {
	query := `
		INSERT INTO memories (id, couple_id, author_id, url, description, date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.db.Exec(ctx, query,
		memory.ID, memory.CoupleID, memory.AuthorID, memory.URL,
		memory.Description, memory.Date, memory.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create memory: %w", err)
	}
	return nil
}

// ListByCouple retrieves a couple's memories, newest first
func (r *MemoryRepository) ListByCouple(ctx context.Context, coupleID string) ([]*models.Memory, error) {
	query := `
		SELECT id, couple_id, author_id, url, description, date, created_at
		FROM memories
		WHERE couple_id = $1
		ORDER BY date DESC
	`
	rows, err := r.db.Query(ctx, query, coupleID)
	if err != nil {
		return nil, fmt.Errorf("failed to list memories: %w", err)
	}
	defer rows.Close()

	var memories []*models.Memory
	for rows.Next() {
		var memory models.Memory
		err := rows.Scan(
			&memory.ID, &memory.CoupleID, &memory.AuthorID, &memory.URL,
			&memory.Description, &memory.Date, &memory.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan memory: %w", err)
		}
		memories = append(memories, &memory)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating memories: %w", err)
	}

	return memories, nil
}

// Update changes the date and/or description of a memory
func (r *MemoryRepository) Update(ctx context.Context, coupleID, memoryID string, description *string, date *time.Time) error {
	query := `
		UPDATE memories
		SET description = COALESCE($1, description),
		    date = COALESCE($2, date)
		WHERE id = $3 AND couple_id = $4
	`
	result, err := r.db.Exec(ctx, query, description, date, memoryID, coupleID)
	if err != nil {
		return fmt.Errorf("failed to update memory: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a memory from the couple's album
func (r *MemoryRepository) Delete(ctx context.Context, coupleID, memoryID string) error {
	query := `DELETE FROM memories WHERE id = $1 AND couple_id = $2`
	result, err := r.db.Exec(ctx, query, memoryID, coupleID)
	if err != nil {
		return fmt.Errorf("failed to delete memory: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
