package tenant

import (
	"time"

	"github.com/google/uuid"
)

// Config is one row of the shared tenant directory. It is written by an
// external administrative process; this service only ever reads it.
type Config struct {
	ID         uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	TenantCode string    `gorm:"column:tenant_code;type:varchar(50);uniqueIndex:uq_tenant_code;not null"`
	DBHost     string    `gorm:"column:db_host;type:varchar(255);not null"`
	DBPort     string    `gorm:"column:db_port;type:varchar(10);not null"`
	DBName     string    `gorm:"column:db_name;type:varchar(100);not null"`
	DBUser     string    `gorm:"column:db_user;type:varchar(100);not null"`
	DBPassword string    `gorm:"column:db_password;type:varchar(255);not null"`
	SSLMode    string    `gorm:"column:ssl_mode;type:varchar(20);not null;default:disable"`
	Active     bool      `gorm:"column:active;not null;default:true"`
	CreatedAt  time.Time `gorm:"column:created_at"`
	UpdatedAt  time.Time `gorm:"column:updated_at"`
}

func (Config) TableName() string {
	return "tenant_configs"
}
