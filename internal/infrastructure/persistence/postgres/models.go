package postgres

// Models GORM do domínio de consultas. Timestamps são instantes em
// milissegundos desde epoch; a conversão para time.Time acontece na
// fronteira com as entidades.

// UserModel é o model GORM para usuários
type UserModel struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"type:varchar(255);not null"`
	Disabled  bool   `gorm:"not null;default:false"`
	CreatedAt int64  `gorm:"autoCreateTime:milli"`
	UpdatedAt int64  `gorm:"autoUpdateTime:milli"`
}

func (UserModel) TableName() string {
	return "users"
}

// IdentityMappingModel vincula identidade externa a usuário interno (1:1)
type IdentityMappingModel struct {
	ID         uint   `gorm:"primaryKey"`
	ExternalID string `gorm:"type:varchar(255);uniqueIndex;not null"`
	UserID     uint   `gorm:"uniqueIndex;not null"`
	CreatedAt  int64  `gorm:"autoCreateTime:milli"`
}

func (IdentityMappingModel) TableName() string {
	return "identity_mappings"
}

// ConsultationModel é o model GORM para consultas
type ConsultationModel struct {
	ID        uint   `gorm:"primaryKey"`
	Title     string `gorm:"type:varchar(100);not null"`
	Body      string `gorm:"type:text;not null"`
	Draft     bool   `gorm:"not null;default:false;index"`
	HiddenAt  *int64 // Soft hide
	SolvedAt  *int64 `gorm:"index"`
	AuthorID  *uint  `gorm:"index"` // Set-null quando o autor é deletado
	CreatedAt int64  `gorm:"autoCreateTime:milli;index"`
	UpdatedAt int64  `gorm:"autoUpdateTime:milli"`
}

func (ConsultationModel) TableName() string {
	return "consultations"
}

// AdviceModel é o model GORM para conselhos
type AdviceModel struct {
	ID             uint   `gorm:"primaryKey"`
	Body           string `gorm:"type:text;not null"`
	Draft          bool   `gorm:"not null;default:false"`
	HiddenAt       *int64
	ConsultationID uint  `gorm:"not null;index"`
	AuthorID       *uint `gorm:"index"`
	CreatedAt      int64 `gorm:"autoCreateTime:milli;index"`
	UpdatedAt      int64 `gorm:"autoUpdateTime:milli"`
}

func (AdviceModel) TableName() string {
	return "advices"
}

// TagModel é o model GORM para tags (dados mestres)
type TagModel struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"type:varchar(255);uniqueIndex;not null"`
	SortOrder int    `gorm:"not null;default:0;index"`
	CreatedAt int64  `gorm:"autoCreateTime:milli"`
}

func (TagModel) TableName() string {
	return "tags"
}

// ConsultationTaggingModel é o vínculo consulta↔tag com chave composta
type ConsultationTaggingModel struct {
	ConsultationID uint `gorm:"primaryKey;autoIncrement:false"`
	TagID          uint `gorm:"primaryKey;autoIncrement:false"`
}

func (ConsultationTaggingModel) TableName() string {
	return "consultation_taggings"
}
