package repository

import (
	"context"

	"github.com/google/uuid"
)

const insertProfile = `
INSERT INTO profiles (username, email, password, role)
VALUES ($1, $2, $3, $4)
RETURNING id, username, email, password, role, created_at, updated_at
`

type InsertProfileParams struct {
	Username string
	Email    string
	Password string
	Role     string
}

func (q *Queries) InsertProfile(c context.Context, arg InsertProfileParams) (Profile, error) {
	row := q.db.QueryRow(c, insertProfile, arg.Username, arg.Email, arg.Password, arg.Role)
	var p Profile
	err := row.Scan(
		&p.ID,
		&p.Username,
		&p.Email,
		&p.Password,
		&p.Role,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	return p, err
}

const findProfileByEmail = `
SELECT id, username, email, password, role, created_at, updated_at
FROM profiles
WHERE email = $1
`

func (q *Queries) FindProfileByEmail(c context.Context, email string) (Profile, error) {
	row := q.db.QueryRow(c, findProfileByEmail, email)
	var p Profile
	err := row.Scan(
		&p.ID,
		&p.Username,
		&p.Email,
		&p.Password,
		&p.Role,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	return p, err
}

const findProfileById = `
SELECT id, username, email, password, role, created_at, updated_at
FROM profiles
WHERE id = $1
`

func (q *Queries) FindProfileById(c context.Context, id uuid.UUID) (Profile, error) {
	row := q.db.QueryRow(c, findProfileById, id)
	var p Profile
	err := row.Scan(
		&p.ID,
		&p.Username,
		&p.Email,
		&p.Password,
		&p.Role,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	return p, err
}

const updateProfile = `
UPDATE profiles
SET username = $2, email = $3, updated_at = now()
WHERE id = $1
RETURNING id, username, email, password, role, created_at, updated_at
`

type UpdateProfileParams struct {
	ID       uuid.UUID
	Username string
	Email    string
}

func (q *Queries) UpdateProfile(c context.Context, arg UpdateProfileParams) (Profile, error) {
	row := q.db.QueryRow(c, updateProfile, arg.ID, arg.Username, arg.Email)
	var p Profile
	err := row.Scan(
		&p.ID,
		&p.Username,
		&p.Email,
		&p.Password,
		&p.Role,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	return p, err
}

const updateProfileRole = `
UPDATE profiles
SET role = $2, updated_at = now()
WHERE id = $1
RETURNING id, username, email, password, role, created_at, updated_at
`

func (q *Queries) UpdateProfileRole(c context.Context, id uuid.UUID, role string) (Profile, error) {
	row := q.db.QueryRow(c, updateProfileRole, id, role)
	var p Profile
	err := row.Scan(
		&p.ID,
		&p.Username,
		&p.Email,
		&p.Password,
		&p.Role,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	return p, err
}
