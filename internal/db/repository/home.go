package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"homeboard/internal/domain"
)

// HomeRepo persists listings. Mutations go through the serialized write pool;
// lookups and the search path run on the concurrent read pool.
type HomeRepo struct {
	write *sql.DB
	read  *sql.DB
}

func NewHomeRepo(write, read *sql.DB) *HomeRepo {
	return &HomeRepo{write: write, read: read}
}

func (r *HomeRepo) Create(ctx context.Context, realtorID int64, req *domain.CreateHomeRequest) (*domain.Home, error) {
	tx, err := r.write.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback() //nolint:errcheck

	res, err := tx.ExecContext(ctx,
		`INSERT INTO homes (address, city, price, property_type, bedrooms, bathrooms, land_size, realtor_id)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		req.Address, req.City, req.Price, string(req.PropertyType),
		req.Bedrooms, req.Bathrooms, req.LandSize, realtorID)
	if err != nil {
		return nil, mapDBError(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}

	for _, url := range req.Images {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO home_images (home_id, url) VALUES (?, ?)`, id, url); err != nil {
			return nil, mapDBError(err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

func (r *HomeRepo) GetByID(ctx context.Context, id int64) (*domain.Home, error) {
	var h domain.Home
	var propertyType string
	err := r.read.QueryRowContext(ctx,
		`SELECT id, address, city, price, property_type, bedrooms, bathrooms, land_size, realtor_id, created_at
		 FROM homes WHERE id = ?`, id).
		Scan(&h.ID, &h.Address, &h.City, &h.Price, &propertyType,
			&h.Bedrooms, &h.Bathrooms, &h.LandSize, &h.RealtorID, &h.CreatedAt)
	if err != nil {
		return nil, mapDBError(err)
	}
	h.PropertyType = domain.PropertyType(propertyType)

	rows, err := r.read.QueryContext(ctx,
		`SELECT url FROM home_images WHERE home_id = ? ORDER BY id`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var url string
		if err := rows.Scan(&url); err != nil {
			return nil, err
		}
		h.Images = append(h.Images, url)
	}
	return &h, rows.Err()
}

func (r *HomeRepo) GetOwnerID(ctx context.Context, id int64) (int64, error) {
	var ownerID int64
	err := r.read.QueryRowContext(ctx,
		`SELECT realtor_id FROM homes WHERE id = ?`, id).Scan(&ownerID)
	if err != nil {
		return 0, mapDBError(err)
	}
	return ownerID, nil
}

// List returns listing summaries matching the filter. Only constraints present
// on the filter contribute WHERE clauses; an empty filter matches everything.
func (r *HomeRepo) List(ctx context.Context, filter domain.HomeFilter) ([]domain.HomeSummary, error) {
	where, args := filterClauses(filter)

	query := `SELECT h.id, h.address, h.city, h.price, h.property_type,
		h.bedrooms, h.bathrooms, h.land_size,
		COALESCE((SELECT url FROM home_images WHERE home_id = h.id ORDER BY id LIMIT 1), '')
		FROM homes h`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY h.id"

	rows, err := r.read.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	summaries := []domain.HomeSummary{}
	for rows.Next() {
		var s domain.HomeSummary
		var propertyType string
		if err := rows.Scan(&s.ID, &s.Address, &s.City, &s.Price, &propertyType,
			&s.Bedrooms, &s.Bathrooms, &s.LandSize, &s.Image); err != nil {
			return nil, err
		}
		s.PropertyType = domain.PropertyType(propertyType)
		summaries = append(summaries, s)
	}
	return summaries, rows.Err()
}

// filterClauses translates the presence-sensitive filter into WHERE fragments.
func filterClauses(filter domain.HomeFilter) (where []string, args []interface{}) {
	if filter.City != nil {
		where = append(where, "h.city = ?")
		args = append(args, *filter.City)
	}
	if filter.Price != nil {
		if filter.Price.Min != nil {
			where = append(where, "h.price >= ?")
			args = append(args, *filter.Price.Min)
		}
		if filter.Price.Max != nil {
			where = append(where, "h.price <= ?")
			args = append(args, *filter.Price.Max)
		}
	}
	if filter.PropertyType != nil {
		where = append(where, "h.property_type = ?")
		args = append(args, string(*filter.PropertyType))
	}
	return where, args
}

func (r *HomeRepo) Update(ctx context.Context, id int64, req *domain.UpdateHomeRequest) (*domain.Home, error) {
	set := []string{}
	args := []interface{}{}
	if req.Address != nil {
		set = append(set, "address = ?")
		args = append(args, *req.Address)
	}
	if req.City != nil {
		set = append(set, "city = ?")
		args = append(args, *req.City)
	}
	if req.Price != nil {
		set = append(set, "price = ?")
		args = append(args, *req.Price)
	}
	if req.PropertyType != nil {
		set = append(set, "property_type = ?")
		args = append(args, string(*req.PropertyType))
	}
	if req.Bedrooms != nil {
		set = append(set, "bedrooms = ?")
		args = append(args, *req.Bedrooms)
	}
	if req.Bathrooms != nil {
		set = append(set, "bathrooms = ?")
		args = append(args, *req.Bathrooms)
	}
	if req.LandSize != nil {
		set = append(set, "land_size = ?")
		args = append(args, *req.LandSize)
	}
	if len(set) == 0 {
		return r.GetByID(ctx, id)
	}

	args = append(args, id)
	res, err := r.write.ExecContext(ctx,
		fmt.Sprintf("UPDATE homes SET %s WHERE id = ?", strings.Join(set, ", ")), args...)
	if err != nil {
		return nil, mapDBError(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, domain.ErrNotFound("home %d not found", id)
	}
	return r.GetByID(ctx, id)
}

func (r *HomeRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.write.ExecContext(ctx, `DELETE FROM homes WHERE id = ?`, id)
	if err != nil {
		return mapDBError(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound("home %d not found", id)
	}
	return nil
}
