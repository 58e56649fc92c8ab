package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"lovesync-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = errors.New("not found")

const userColumns = `id, name, email, password_hash, avatar_url, relationship_start,
	invite_code, invite_code_generated_at, partner_id, couple_id, created_at`

// UserRepository handles database operations for users
type UserRepository struct {
	db *pgxpool.Pool
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

func scanUser(row pgx.Row) (*models.User, string, error) {
	var user models.User
	var passwordHash string
	err := row.Scan(
		&user.ID, &user.Name, &user.Email, &passwordHash, &user.AvatarURL,
		&user.RelationshipStart, &user.InviteCode, &user.InviteCodeGeneratedAt,
		&user.PartnerID, &user.CoupleID, &user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, "", ErrNotFound
		}
		return nil, "", err
	}
	return &user, passwordHash, nil
}

// Create creates a new user with all linkage fields null
func (r *UserRepository) Create(ctx context.Context, user *models.User, passwordHash string) error {
	query := `
		INSERT INTO users (id, name, email, password_hash, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.db.Exec(ctx, query, user.ID, user.Name, user.Email, passwordHash, user.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	user, _, err := scanUser(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

// GetByEmail retrieves a user and their password hash by email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, string, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	user, hash, err := scanUser(r.db.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, "", ErrNotFound
		}
		return nil, "", fmt.Errorf("failed to get user by email: %w", err)
	}
	return user, hash, nil
}

// GetByInviteCode retrieves the user currently owning the given invite code
func (r *UserRepository) GetByInviteCode(ctx context.Context, code string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE invite_code = $1`
	user, _, err := scanUser(r.db.QueryRow(ctx, query, code))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user by invite code: %w", err)
	}
	return user, nil
}

// EmailExists checks if an email is already registered
func (r *UserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`
	var exists bool
	err := r.db.QueryRow(ctx, query, email).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check email existence: %w", err)
	}
	return exists, nil
}

// InviteCodeExists checks if an invite code is currently owned by anyone
func (r *UserRepository) InviteCodeExists(ctx context.Context, code string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM users WHERE invite_code = $1)`
	var exists bool
	err := r.db.QueryRow(ctx, query, code).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check invite code existence: %w", err)
	}
	return exists, nil
}

// UpdateProfile updates the user-editable profile fields
func (r *UserRepository) UpdateProfile(ctx context.Context, userID string, name *string, relationshipStart *time.Time) error {
	query := `
		UPDATE users
		SET name = COALESCE($1, name),
		    relationship_start = COALESCE($2, relationship_start)
		WHERE id = $3
	`
	result, err := r.db.Exec(ctx, query, name, relationshipStart, userID)
	if err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdateAvatarURL stores the uploaded avatar location
func (r *UserRepository) UpdateAvatarURL(ctx context.Context, userID, url string) error {
	query := `UPDATE users SET avatar_url = $1 WHERE id = $2`
	result, err := r.db.Exec(ctx, query, url, userID)
	if err != nil {
		return fmt.Errorf("failed to update avatar: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// SetInviteCode replaces the user's invite code. Overlapping writes from a
// rapid double generate resolve last-write-wins.
func (r *UserRepository) SetInviteCode(ctx context.Context, userID, code string, generatedAt time.Time) error {
	query := `UPDATE users SET invite_code = $1, invite_code_generated_at = $2 WHERE id = $3`
	result, err := r.db.Exec(ctx, query, code, generatedAt, userID)
	if err != nil {
		return fmt.Errorf("failed to set invite code: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// ConsumeInviteCode clears the code only if the owner still holds it, so
// concurrent connect attempts cannot both claim the same code. Returns
// whether this caller won the claim.
func (r *UserRepository) ConsumeInviteCode(ctx context.Context, ownerID, code string) (bool, error) {
	query := `
		UPDATE users
		SET invite_code = NULL, invite_code_generated_at = NULL
		WHERE id = $1 AND invite_code = $2
	`
	result, err := r.db.Exec(ctx, query, ownerID, code)
	if err != nil {
		return false, fmt.Errorf("failed to consume invite code: %w", err)
	}
	return result.RowsAffected() > 0, nil
}

// LinkCouple sets the symmetric partner/couple fields on both users in a
// single transaction: either both become linked or neither does.
func (r *UserRepository) LinkCouple(ctx context.Context, user1ID, user2ID, coupleID string) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin link transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	batch := &pgx.Batch{}
	batch.Queue(`UPDATE users SET partner_id = $1, couple_id = $2 WHERE id = $3`, user2ID, coupleID, user1ID)
	batch.Queue(`UPDATE users SET partner_id = $1, couple_id = $2 WHERE id = $3`, user1ID, coupleID, user2ID)

	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("failed to link users: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit link transaction: %w", err)
	}
	return nil
}

// UnlinkCouple clears the linkage fields on the user and, when known, the
// partner, in a single transaction. Clearing an already-null link is fine.
func (r *UserRepository) UnlinkCouple(ctx context.Context, userID string, partnerID *string) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin unlink transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	batch := &pgx.Batch{}
	batch.Queue(`UPDATE users SET partner_id = NULL, couple_id = NULL WHERE id = $1`, userID)
	if partnerID != nil {
		batch.Queue(`UPDATE users SET partner_id = NULL, couple_id = NULL WHERE id = $1`, *partnerID)
	}

	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("failed to unlink users: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit unlink transaction: %w", err)
	}
	return nil
}
