package http

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/rafabene/consulta-backend/internal/handlers/middleware"
	"github.com/rafabene/consulta-backend/internal/infrastructure/cache"
	"github.com/rafabene/consulta-backend/internal/infrastructure/i18n"
	"github.com/rafabene/consulta-backend/internal/infrastructure/persistence/postgres"
	"github.com/rafabene/consulta-backend/internal/services"
)

// setupAPI monta o router completo sobre um banco descartável. A
// identidade chega por um header de teste no lugar do JWT: o middleware
// de auth tem testes próprios.
func setupAPI(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("falha ao abrir banco de teste: %v", err)
	}
	if err := postgres.Migrate(db); err != nil {
		t.Fatalf("falha ao migrar schema: %v", err)
	}

	consultationRepo := postgres.NewConsultationRepository(db)
	adviceRepo := postgres.NewAdviceRepository(db)
	tagRepo := postgres.NewTagRepository(db)
	uow := postgres.NewUnitOfWork(db)

	log := noopLogger{}
	consultationService := services.NewConsultationService(consultationRepo, uow, log)
	adviceService := services.NewAdviceService(adviceRepo, consultationRepo, log)
	tagService := services.NewTagService(tagRepo, cache.NewTagCache(nil, log), log)

	consultationHandler := NewConsultationHandler(consultationService, log)
	adviceHandler := NewAdviceHandler(adviceService, log)
	tagHandler := NewTagHandler(tagService, log)

	i18nService, err := i18n.NewService("en")
	if err != nil {
		t.Fatalf("falha ao inicializar i18n: %v", err)
	}

	router := gin.New()
	router.Use(middleware.NewI18nMiddleware(i18nService).DetectLanguage())
	router.Use(func(c *gin.Context) {
		if v := c.GetHeader("X-Test-User"); v != "" {
			id, err := strconv.ParseUint(v, 10, 32)
			if err != nil {
				t.Fatalf("header X-Test-User inválido: %v", err)
			}
			c.Set(middleware.ContextUserIDKey, uint(id))
		}
	})

	v1 := router.Group("/api/v1")
	{
		consultations := v1.Group("/consultations")
		{
			consultations.GET("", consultationHandler.ListConsultations)
			consultations.POST("", consultationHandler.CreateConsultation)
			consultations.GET("/:id", consultationHandler.GetConsultation)
			consultations.PUT("/:id", consultationHandler.UpdateConsultation)
			consultations.POST("/:id/advice", adviceHandler.CreateAdvice)
			consultations.PUT("/:id/advice/draft", adviceHandler.UpdateDraftAdvice)
		}

		v1.GET("/tags", tagHandler.ListTags)
	}

	return router, db
}

// doRequest executa uma requisição como o usuário informado (0 = anônimo)
func doRequest(t *testing.T, router *gin.Engine, method, path string, payload interface{}, userID uint) *httptest.ResponseRecorder {
	t.Helper()

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("falha ao serializar payload: %v", err)
		}
		body = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, body)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if userID != 0 {
		req.Header.Set("X-Test-User", strconv.FormatUint(uint64(userID), 10))
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeJSON(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), out); err != nil {
		t.Fatalf("resposta não é JSON: %v (%s)", err, w.Body.String())
	}
}

func apiSeedUser(t *testing.T, db *gorm.DB, name string) uint {
	t.Helper()
	user := &postgres.UserModel{Name: name}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("falha ao criar usuário: %v", err)
	}
	return user.ID
}

func apiSeedTag(t *testing.T, db *gorm.DB, name string, sortOrder int) uint {
	t.Helper()
	tag := &postgres.TagModel{Name: name, SortOrder: sortOrder}
	if err := db.Create(tag).Error; err != nil {
		t.Fatalf("falha ao criar tag: %v", err)
	}
	return tag.ID
}

func apiSeedConsultation(t *testing.T, db *gorm.DB, model *postgres.ConsultationModel) uint {
	t.Helper()
	if err := db.Create(model).Error; err != nil {
		t.Fatalf("falha ao criar consulta: %v", err)
	}
	return model.ID
}
