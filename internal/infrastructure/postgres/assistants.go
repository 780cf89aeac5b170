package postgres

import (
	"context"
	"encoding/json"

	"github.com/lib/pq"

	"stylemart-backend/internal/domain"
)

func (s *Store) ConversationByID(ctx context.Context, conversationID string, typ domain.ConversationType, userID int64) (*domain.Conversation, error) {
	var c domain.Conversation
	var messages []byte
	err := s.q.QueryRowContext(ctx,
		`SELECT id, user_id, type, conversation_id, messages, created_at, updated_at
		 FROM conversations WHERE conversation_id=$1 AND type=$2 AND user_id=$3`,
		conversationID, string(typ), userID).
		Scan(&c.ID, &c.UserID, (*string)(&c.Type), &c.ConversationID, &messages, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, notFound(err, "conversation")
	}
	_ = json.Unmarshal(messages, &c.Messages)
	return &c, nil
}

func (s *Store) CreateConversation(ctx context.Context, c *domain.Conversation) error {
	messages, _ := json.Marshal(c.Messages)
	if c.Messages == nil {
		messages = []byte(`[]`)
	}
	return s.q.QueryRowContext(ctx,
		`INSERT INTO conversations (user_id, type, conversation_id, messages)
		 VALUES ($1,$2,$3,$4) RETURNING id, created_at, updated_at`,
		c.UserID, string(c.Type), c.ConversationID, messages).
		Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
}

func (s *Store) UpdateConversationMessages(ctx context.Context, id int64, msgs []domain.ChatMessage) error {
	messages, err := json.Marshal(msgs)
	if err != nil {
		return err
	}
	_, err = s.q.ExecContext(ctx,
		`UPDATE conversations SET messages=$2, updated_at=now() WHERE id=$1`, id, messages)
	return err
}

const presetColumns = `id, name, description, status, parameters, created_at, updated_at`

func scanPreset(row interface{ Scan(...any) error }) (*domain.AvatarPreset, error) {
	var p domain.AvatarPreset
	var params []byte
	err := row.Scan(&p.ID, &p.Name, &p.Description, (*string)(&p.Status), &params, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	_ = json.Unmarshal(params, &p.Parameters)
	return &p, nil
}

func (s *Store) ListActivePresets(ctx context.Context) ([]domain.AvatarPreset, error) {
	rows, err := s.q.QueryContext(ctx,
		`SELECT `+presetColumns+` FROM avatar_presets WHERE status='ACTIVE' ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.AvatarPreset
	for rows.Next() {
		p, err := scanPreset(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}

func (s *Store) PresetByID(ctx context.Context, id int64) (*domain.AvatarPreset, error) {
	p, err := scanPreset(s.q.QueryRowContext(ctx,
		`SELECT `+presetColumns+` FROM avatar_presets WHERE id=$1`, id))
	if err != nil {
		return nil, notFound(err, "avatar preset")
	}
	return p, nil
}

func (s *Store) CreatePreset(ctx context.Context, p *domain.AvatarPreset) error {
	params, _ := json.Marshal(p.Parameters)
	if p.Parameters == nil {
		params = []byte(`{}`)
	}
	return s.q.QueryRowContext(ctx,
		`INSERT INTO avatar_presets (name, description, status, parameters)
		 VALUES ($1,$2,$3,$4) RETURNING id, created_at, updated_at`,
		p.Name, p.Description, string(p.Status), params).
		Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
}

func (s *Store) UpdatePreset(ctx context.Context, p *domain.AvatarPreset) error {
	params, _ := json.Marshal(p.Parameters)
	_, err := s.q.ExecContext(ctx,
		`UPDATE avatar_presets SET name=$2, description=$3, status=$4, parameters=$5, updated_at=now()
		 WHERE id=$1`, p.ID, p.Name, p.Description, string(p.Status), params)
	return err
}

func (s *Store) CreateAvatarRequest(ctx context.Context, r *domain.AvatarRequest) error {
	styleParams, _ := json.Marshal(r.StyleParams)
	if r.StyleParams == nil {
		styleParams = []byte(`{}`)
	}
	return s.q.QueryRowContext(ctx,
		`INSERT INTO avatar_requests (request_id, user_id, product_id, preset_id, style_params, image_count, status)
		 VALUES ($1,$2,$3,$4,$5,$6,$7) RETURNING id, created_at, updated_at`,
		r.RequestID, r.UserID, r.ProductID, r.PresetID, styleParams, r.ImageCount, string(r.Status)).
		Scan(&r.ID, &r.CreatedAt, &r.UpdatedAt)
}

func (s *Store) UpdateAvatarRequestResult(ctx context.Context, id int64, st domain.AvatarRequestStatus, urls []string) error {
	_, err := s.q.ExecContext(ctx,
		`UPDATE avatar_requests SET status=$2, image_urls=$3, updated_at=now() WHERE id=$1`,
		id, string(st), pq.Array(urls))
	return err
}
