package locations

import "time"

// Branch is a physical clinic location.
type Branch struct {
	ID        int64     `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Address   *string   `db:"address" json:"address,omitempty"`
	Phone     *string   `db:"phone" json:"phone,omitempty"`
	Active    bool      `db:"active" json:"active"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// Province is read-only reference data seeded by migration.
type Province struct {
	Code string `db:"code" json:"code"`
	Name string `db:"name" json:"name"`
}

// Ward belongs to a province; also seeded reference data.
type Ward struct {
	Code         string `db:"code" json:"code"`
	Name         string `db:"name" json:"name"`
	ProvinceCode string `db:"province_code" json:"province_code"`
}
