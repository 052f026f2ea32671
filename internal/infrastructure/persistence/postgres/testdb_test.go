package postgres

import (
	"path/filepath"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB abre um banco SQLite descartável com o schema migrado.
// As queries dos repositories se mantêm portáveis entre PostgreSQL e
// SQLite justamente para permitir testes sem infraestrutura.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("falha ao abrir banco de teste: %v", err)
	}

	if err := Migrate(db); err != nil {
		t.Fatalf("falha ao migrar schema: %v", err)
	}

	return db
}

func seedUser(t *testing.T, db *gorm.DB, name string) uint {
	t.Helper()

	user := &UserModel{Name: name}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("falha ao criar usuário: %v", err)
	}
	return user.ID
}

func seedTag(t *testing.T, db *gorm.DB, name string, sortOrder int) uint {
	t.Helper()

	tag := &TagModel{Name: name, SortOrder: sortOrder}
	if err := db.Create(tag).Error; err != nil {
		t.Fatalf("falha ao criar tag: %v", err)
	}
	return tag.ID
}

func seedConsultation(t *testing.T, db *gorm.DB, model *ConsultationModel) uint {
	t.Helper()

	if err := db.Create(model).Error; err != nil {
		t.Fatalf("falha ao criar consulta: %v", err)
	}
	return model.ID
}

func seedAdvice(t *testing.T, db *gorm.DB, model *AdviceModel) uint {
	t.Helper()

	if err := db.Create(model).Error; err != nil {
		t.Fatalf("falha ao criar conselho: %v", err)
	}
	return model.ID
}

func seedTagging(t *testing.T, db *gorm.DB, consultationID, tagID uint) {
	t.Helper()

	if err := db.Create(&ConsultationTaggingModel{ConsultationID: consultationID, TagID: tagID}).Error; err != nil {
		t.Fatalf("falha ao criar vínculo de tag: %v", err)
	}
}

func countTaggings(t *testing.T, db *gorm.DB, consultationID uint) int64 {
	t.Helper()

	var count int64
	if err := db.Model(&ConsultationTaggingModel{}).Where("consultation_id = ?", consultationID).Count(&count).Error; err != nil {
		t.Fatalf("falha ao contar vínculos: %v", err)
	}
	return count
}

func ptrInt64(v int64) *int64 {
	return &v
}
