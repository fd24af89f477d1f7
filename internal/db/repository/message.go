package repository

import (
	"context"
	"database/sql"

	"homeboard/internal/domain"
)

type MessageRepo struct {
	write *sql.DB
	read  *sql.DB
}

func NewMessageRepo(write, read *sql.DB) *MessageRepo {
	return &MessageRepo{write: write, read: read}
}

func (r *MessageRepo) Create(ctx context.Context, m *domain.Message) (*domain.Message, error) {
	res, err := r.write.ExecContext(ctx,
		`INSERT INTO messages (home_id, buyer_id, realtor_id, body) VALUES (?, ?, ?, ?)`,
		m.HomeID, m.BuyerID, m.RealtorID, m.Body)
	if err != nil {
		return nil, mapDBError(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}

	var out domain.Message
	err = r.read.QueryRowContext(ctx,
		`SELECT id, home_id, buyer_id, realtor_id, body, created_at FROM messages WHERE id = ?`, id).
		Scan(&out.ID, &out.HomeID, &out.BuyerID, &out.RealtorID, &out.Body, &out.CreatedAt)
	if err != nil {
		return nil, mapDBError(err)
	}
	return &out, nil
}

func (r *MessageRepo) ListByHome(ctx context.Context, homeID int64) ([]domain.MessageWithBuyer, error) {
	rows, err := r.read.QueryContext(ctx,
		`SELECT m.id, m.home_id, m.buyer_id, m.realtor_id, m.body, m.created_at,
		        u.name, u.email, u.phone
		 FROM messages m
		 JOIN users u ON u.id = m.buyer_id
		 WHERE m.home_id = ?
		 ORDER BY m.id`, homeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	messages := []domain.MessageWithBuyer{}
	for rows.Next() {
		var m domain.MessageWithBuyer
		if err := rows.Scan(&m.ID, &m.HomeID, &m.BuyerID, &m.RealtorID, &m.Body, &m.CreatedAt,
			&m.BuyerName, &m.BuyerEmail, &m.BuyerPhone); err != nil {
			return nil, err
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}
