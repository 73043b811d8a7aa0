package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/imoveiscrm/realestate-api/internal/core/domain"
)

const uniqueViolation = "23505"

const (
	selectUserSQL = `SELECT id::text, email, password_hash, role, name, created_at FROM users`

	selectPropertySQL = `SELECT id::text, title, description, location, price, bedrooms, bathrooms, area, images, views, created_at FROM properties`
)

// Store implements ports.EntityStore on PostgreSQL.
type Store struct {
	pool *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

func (s *Store) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

func (s *Store) CreateUser(ctx context.Context, in domain.NewUser) (*domain.User, error) {
	role := in.Role
	if role == "" {
		role = domain.RoleClient
	}
	row := s.pool.QueryRow(ctx,
		`INSERT INTO users (id, email, password_hash, role, name)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id::text, email, password_hash, role, name, created_at`,
		uuid.NewString(), in.Email, in.PasswordHash, string(role), in.Name)

	u, err := scanUser(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, domain.ErrUserExists
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}
	return u, nil
}

func (s *Store) GetUser(ctx context.Context, id string) (*domain.User, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrUserNotFound
	}
	return s.findUser(ctx, selectUserSQL+` WHERE id = $1`, id)
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.findUser(ctx, selectUserSQL+` WHERE email = $1`, email)
}

func (s *Store) CountUsers(ctx context.Context) (int, error) {
	var n int
	if err := s.pool.QueryRow(ctx, `SELECT count(*) FROM users`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return n, nil
}

func (s *Store) findUser(ctx context.Context, query string, arg string) (*domain.User, error) {
	u, err := scanUser(s.pool.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return u, nil
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var (
		u    domain.User
		role string
	)
	if err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &role, &u.Name, &u.CreatedAt); err != nil {
		return nil, err
	}
	u.Role = domain.Role(role)
	u.CreatedAt = u.CreatedAt.UTC()
	return &u, nil
}

func (s *Store) CreateProperty(ctx context.Context, in domain.NewProperty) (*domain.Property, error) {
	images := in.Images
	if images == nil {
		images = []string{}
	}
	row := s.pool.QueryRow(ctx,
		`INSERT INTO properties (id, title, description, location, price, bedrooms, bathrooms, area, images)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING id::text, title, description, location, price, bedrooms, bathrooms, area, images, views, created_at`,
		uuid.NewString(), in.Title, in.Description, in.Location, in.Price,
		in.Bedrooms, in.Bathrooms, in.Area, images)

	p, err := scanProperty(row)
	if err != nil {
		return nil, fmt.Errorf("insert property: %w", err)
	}
	return p, nil
}

func (s *Store) GetProperty(ctx context.Context, id string) (*domain.Property, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrPropertyNotFound
	}
	p, err := scanProperty(s.pool.QueryRow(ctx, selectPropertySQL+` WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrPropertyNotFound
		}
		return nil, fmt.Errorf("find property: %w", err)
	}
	return p, nil
}

// GetAllProperties orders by the serial column, which follows insertion.
func (s *Store) GetAllProperties(ctx context.Context) ([]*domain.Property, error) {
	rows, err := s.pool.Query(ctx, selectPropertySQL+` ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("list properties: %w", err)
	}
	defer rows.Close()

	out := make([]*domain.Property, 0)
	for rows.Next() {
		p, err := scanProperty(rows)
		if err != nil {
			return nil, fmt.Errorf("scan property: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (s *Store) UpdateProperty(ctx context.Context, id string, patch domain.PropertyPatch) (*domain.Property, error) {
	sets, args := patchAssignments(patch)
	if len(sets) == 0 {
		return s.GetProperty(ctx, id)
	}
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrPropertyNotFound
	}

	args = append(args, id)
	query := fmt.Sprintf(
		`UPDATE properties SET %s WHERE id = $%d
		 RETURNING id::text, title, description, location, price, bedrooms, bathrooms, area, images, views, created_at`,
		strings.Join(sets, ", "), len(args))

	p, err := scanProperty(s.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrPropertyNotFound
		}
		return nil, fmt.Errorf("update property: %w", err)
	}
	return p, nil
}

// DeleteProperty relies on ON DELETE CASCADE to drop the property's likes.
func (s *Store) DeleteProperty(ctx context.Context, id string) (bool, error) {
	if _, err := uuid.Parse(id); err != nil {
		return false, nil
	}
	tag, err := s.pool.Exec(ctx, `DELETE FROM properties WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete property: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (s *Store) IncrementPropertyViews(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return nil
	}
	if _, err := s.pool.Exec(ctx, `UPDATE properties SET views = views + 1 WHERE id = $1`, id); err != nil {
		return fmt.Errorf("increment views: %w", err)
	}
	return nil
}

func scanProperty(row pgx.Row) (*domain.Property, error) {
	var p domain.Property
	if err := row.Scan(&p.ID, &p.Title, &p.Description, &p.Location, &p.Price,
		&p.Bedrooms, &p.Bathrooms, &p.Area, &p.Images, &p.Views, &p.CreatedAt); err != nil {
		return nil, err
	}
	if p.Images == nil {
		p.Images = []string{}
	}
	p.CreatedAt = p.CreatedAt.UTC()
	return &p, nil
}

func patchAssignments(p domain.PropertyPatch) ([]string, []any) {
	var (
		sets []string
		args []any
	)
	add := func(col string, v any) {
		args = append(args, v)
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
	}
	if p.Title != nil {
		add("title", *p.Title)
	}
	if p.Description != nil {
		add("description", *p.Description)
	}
	if p.Location != nil {
		add("location", *p.Location)
	}
	if p.Price != nil {
		add("price", *p.Price)
	}
	if p.Bedrooms != nil {
		add("bedrooms", *p.Bedrooms)
	}
	if p.Bathrooms != nil {
		add("bathrooms", *p.Bathrooms)
	}
	if p.Area != nil {
		add("area", *p.Area)
	}
	if p.Images != nil {
		images := append([]string{}, (*p.Images)...)
		add("images", images)
	}
	return sets, args
}

// LikeProperty inserts the pair or, on conflict, returns the existing row.
func (s *Store) LikeProperty(ctx context.Context, userID, propertyID string) (*domain.PropertyLike, bool, error) {
	var l domain.PropertyLike
	err := s.pool.QueryRow(ctx,
		`INSERT INTO property_likes (id, user_id, property_id)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (user_id, property_id) DO NOTHING
		 RETURNING id::text, user_id::text, property_id::text, created_at`,
		uuid.NewString(), userID, propertyID).
		Scan(&l.ID, &l.UserID, &l.PropertyID, &l.CreatedAt)
	if err == nil {
		l.CreatedAt = l.CreatedAt.UTC()
		return &l, true, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, false, fmt.Errorf("insert like: %w", err)
	}

	err = s.pool.QueryRow(ctx,
		`SELECT id::text, user_id::text, property_id::text, created_at
		 FROM property_likes WHERE user_id = $1 AND property_id = $2`,
		userID, propertyID).
		Scan(&l.ID, &l.UserID, &l.PropertyID, &l.CreatedAt)
	if err != nil {
		return nil, false, fmt.Errorf("find like: %w", err)
	}
	l.CreatedAt = l.CreatedAt.UTC()
	return &l, false, nil
}

func (s *Store) UnlikeProperty(ctx context.Context, userID, propertyID string) (bool, error) {
	if !validIDs(userID, propertyID) {
		return false, nil
	}
	tag, err := s.pool.Exec(ctx,
		`DELETE FROM property_likes WHERE user_id = $1 AND property_id = $2`, userID, propertyID)
	if err != nil {
		return false, fmt.Errorf("delete like: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (s *Store) GetUserLikedProperties(ctx context.Context, userID string) ([]string, error) {
	ids := make([]string, 0)
	if !validIDs(userID) {
		return ids, nil
	}
	rows, err := s.pool.Query(ctx,
		`SELECT property_id::text FROM property_likes WHERE user_id = $1 ORDER BY created_at, id`, userID)
	if err != nil {
		return nil, fmt.Errorf("list likes: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan like: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (s *Store) IsPropertyLikedByUser(ctx context.Context, userID, propertyID string) (bool, error) {
	if !validIDs(userID, propertyID) {
		return false, nil
	}
	var exists bool
	err := s.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM property_likes WHERE user_id = $1 AND property_id = $2)`,
		userID, propertyID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("find like: %w", err)
	}
	return exists, nil
}

func validIDs(ids ...string) bool {
	for _, id := range ids {
		if _, err := uuid.Parse(id); err != nil {
			return false
		}
	}
	return true
}
