package store

import (
	"errors"
	"strings"

	"github.com/kpalka/fakturaapp/errs"
	"gorm.io/gorm"
)

// CreateClient inserts a new client. NIP uniqueness is enforced by the
// database's unique index; a collision is translated to CONFLICT.
func (s *Store) CreateClient(c *Client) error {
	if err := s.db.Create(c).Error; err != nil {
		return translateUniqueErr(err, "a client with this NIP already exists")
	}
	return nil
}

// UpdateClient overwrites the name, NIP and contact columns of an existing
// client row with c's values, empty strings included.
func (s *Store) UpdateClient(c *Client) error {
	if c.ID == 0 {
		return errs.Internalf("update client: id is zero")
	}
	result := s.db.Model(&Client{}).Where("id = ?", c.ID).Updates(map[string]any{
		"name":        c.Name,
		"nip":         c.NIP,
		"address":     c.Address,
		"city":        c.City,
		"postal_code": c.PostalCode,
		"email":       c.Email,
		"phone":       c.Phone,
	})
	if result.Error != nil {
		return translateUniqueErr(result.Error, "a client with this NIP already exists")
	}
	if result.RowsAffected == 0 {
		return errs.NotFoundf("client %d not found", c.ID)
	}
	return nil
}

// GetClient loads a client by id.
func (s *Store) GetClient(id uint) (*Client, error) {
	var c Client
	if err := s.db.First(&c, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFoundf("client %d not found", id)
		}
		return nil, err
	}
	return &c, nil
}

// ListClients returns every client, ordered by name.
func (s *Store) ListClients() ([]Client, error) {
	var rows []Client
	err := s.db.Order("name ASC").Find(&rows).Error
	return rows, err
}

// FindClientsWithText performs a case-insensitive substring search on
// client name and NIP.
func (s *Store) FindClientsWithText(search string) ([]Client, error) {
	search = likeEscape(search)
	like := "%" + search + "%"
	var rows []Client
	err := s.db.
		Where("LOWER(name) LIKE LOWER(?) ESCAPE '\\' OR nip LIKE ? ESCAPE '\\'", like, like).
		Order("name ASC").
		Find(&rows).Error
	return rows, err
}

func likeEscape(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

// DeleteClient removes a client. Deletion is rejected (REFERENCE_IN_USE) if
// any invoice still references the client; the database's RESTRICT
// foreign key is the enforcement point, this check only yields a friendlier
// error before hitting it.
func (s *Store) DeleteClient(id uint) error {
	var count int64
	if err := s.db.Model(&Invoice{}).Where("client_id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return errs.ReferenceInUsef("client %d has %d invoice(s) and cannot be deleted", id, count)
	}
	result := s.db.Delete(&Client{}, id)
	if result.Error != nil {
		return translateRestrictErr(result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.NotFoundf("client %d not found", id)
	}
	return nil
}

func translateUniqueErr(err error, message string) error {
	if err == nil {
		return nil
	}
	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "unique") {
		return errs.Conflictf("%s", message)
	}
	return err
}

func translateRestrictErr(err error) error {
	if err == nil {
		return nil
	}
	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "foreign key") || strings.Contains(msg, "constraint") {
		return errs.ReferenceInUsef("record is referenced by other rows")
	}
	return err
}
