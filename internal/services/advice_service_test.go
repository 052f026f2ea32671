package services_test

import (
	"context"
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/gorm"

	apperrors "github.com/rafabene/consulta-backend/internal/domain/errors"
	"github.com/rafabene/consulta-backend/internal/infrastructure/cache"
	"github.com/rafabene/consulta-backend/internal/infrastructure/persistence/postgres"
	"github.com/rafabene/consulta-backend/internal/services"
)

var _ = Describe("AdviceService", func() {
	var (
		ctx     context.Context
		db      *gorm.DB
		service *services.AdviceService

		ana, bruno uint
	)

	BeforeEach(func() {
		ctx = context.Background()
		db = newTestDB()
		service = services.NewAdviceService(
			postgres.NewAdviceRepository(db),
			postgres.NewConsultationRepository(db),
			testLogger{},
		)

		ana = seedUser(db, "Ana")
		bruno = seedUser(db, "Bruno")
	})

	expectKind := func(err error, kind apperrors.Kind) {
		GinkgoHelper()
		var domainErr *apperrors.DomainError
		Expect(errors.As(err, &domainErr)).To(BeTrue(), "esperava DomainError, obteve %v", err)
		Expect(domainErr.Kind).To(Equal(kind))
	}

	Describe("CreateAdvice", func() {
		It("cria conselho publicado em consulta pública", func() {
			consultationID := seedConsultation(db, &postgres.ConsultationModel{
				Title: "Pública", Body: "corpo com texto suficiente", AuthorID: &ana,
			})

			advice, err := service.CreateAdvice(ctx, consultationID, services.CreateAdviceInput{
				Body: "Um conselho com conteúdo suficiente",
			}, bruno)
			Expect(err).NotTo(HaveOccurred())

			Expect(advice.ID).NotTo(BeZero())
			Expect(advice.Draft).To(BeFalse())
			Expect(advice.ConsultationID).To(Equal(consultationID))
			Expect(advice.AuthorID).To(HaveValue(Equal(bruno)))
		})

		It("cria conselho como rascunho", func() {
			consultationID := seedConsultation(db, &postgres.ConsultationModel{
				Title: "Pública", Body: "corpo com texto suficiente", AuthorID: &ana,
			})

			advice, err := service.CreateAdvice(ctx, consultationID, services.CreateAdviceInput{
				Body: "Rascunho de conselho", Draft: true,
			}, bruno)
			Expect(err).NotTo(HaveOccurred())
			Expect(advice.Draft).To(BeTrue())
		})

		It("consulta inexistente produz NotFound", func() {
			_, err := service.CreateAdvice(ctx, 9999, services.CreateAdviceInput{
				Body: "Conselho ao vazio",
			}, bruno)
			expectKind(err, apperrors.KindNotFound)
		})

		It("consulta invisível produz NotFound sem criar nada", func() {
			draftID := seedConsultation(db, &postgres.ConsultationModel{
				Title: "Rascunho da Ana", Body: "corpo com texto suficiente", Draft: true, AuthorID: &ana,
			})

			_, err := service.CreateAdvice(ctx, draftID, services.CreateAdviceInput{
				Body: "Não deveria existir",
			}, bruno)
			expectKind(err, apperrors.KindNotFound)

			var count int64
			Expect(db.Model(&postgres.AdviceModel{}).Count(&count).Error).To(Succeed())
			Expect(count).To(BeZero())
		})

		It("a autora pode aconselhar o próprio rascunho", func() {
			draftID := seedConsultation(db, &postgres.ConsultationModel{
				Title: "Rascunho da Ana", Body: "corpo com texto suficiente", Draft: true, AuthorID: &ana,
			})

			advice, err := service.CreateAdvice(ctx, draftID, services.CreateAdviceInput{
				Body: "Anotação da própria autora",
			}, ana)
			Expect(err).NotTo(HaveOccurred())
			Expect(advice.ID).NotTo(BeZero())
		})
	})

	Describe("UpdateDraftAdvice", func() {
		var consultationID uint

		BeforeEach(func() {
			consultationID = seedConsultation(db, &postgres.ConsultationModel{
				Title: "Pública", Body: "corpo com texto suficiente", AuthorID: &ana,
			})
		})

		It("sem rascunho produz NotFound", func() {
			_, err := service.UpdateDraftAdvice(ctx, consultationID, services.UpdateDraftAdviceInput{
				Body: "Nada para editar",
			}, bruno)
			expectKind(err, apperrors.KindNotFound)
		})

		It("conselho publicado é imutável por este caminho", func() {
			seedAdvice(db, &postgres.AdviceModel{
				Body: "Publicado", ConsultationID: consultationID, AuthorID: &bruno,
			})

			_, err := service.UpdateDraftAdvice(ctx, consultationID, services.UpdateDraftAdviceInput{
				Body: "Tentativa de edição",
			}, bruno)
			expectKind(err, apperrors.KindNotFound)
		})

		It("edita o corpo do próprio rascunho", func() {
			seedAdvice(db, &postgres.AdviceModel{
				Body: "Versão original", Draft: true, ConsultationID: consultationID, AuthorID: &bruno,
			})

			advice, err := service.UpdateDraftAdvice(ctx, consultationID, services.UpdateDraftAdviceInput{
				Body: "Versão revisada",
			}, bruno)
			Expect(err).NotTo(HaveOccurred())

			Expect(advice.Body).To(Equal("Versão revisada"))
			Expect(advice.Draft).To(BeTrue(), "sem flag explícita o conselho continua rascunho")
		})

		It("publica o rascunho na mesma operação", func() {
			adviceID := seedAdvice(db, &postgres.AdviceModel{
				Body: "Versão original", Draft: true, ConsultationID: consultationID, AuthorID: &bruno,
			})

			publish := false
			advice, err := service.UpdateDraftAdvice(ctx, consultationID, services.UpdateDraftAdviceInput{
				Body: "Versão final", Draft: &publish,
			}, bruno)
			Expect(err).NotTo(HaveOccurred())
			Expect(advice.Draft).To(BeFalse())

			var model postgres.AdviceModel
			Expect(db.Where("id = ?", adviceID).First(&model).Error).To(Succeed())
			Expect(model.Draft).To(BeFalse())
		})

		It("não alcança o rascunho de outro autor", func() {
			seedAdvice(db, &postgres.AdviceModel{
				Body: "Rascunho do Bruno", Draft: true, ConsultationID: consultationID, AuthorID: &bruno,
			})

			_, err := service.UpdateDraftAdvice(ctx, consultationID, services.UpdateDraftAdviceInput{
				Body: "Invasão",
			}, ana)
			expectKind(err, apperrors.KindNotFound)
		})
	})
})

var _ = Describe("TagService", func() {
	It("lista tags com contagens públicas quando o cache está desabilitado", func() {
		db := newTestDB()
		service := services.NewTagService(
			postgres.NewTagRepository(db),
			cache.NewTagCache(nil, testLogger{}),
			testLogger{},
		)

		ana := seedUser(db, "Ana")
		career := seedTag(db, "carreira", 1)
		finance := seedTag(db, "finanças", 2)

		publicID := seedConsultation(db, &postgres.ConsultationModel{
			Title: "Pública", Body: "corpo com texto suficiente", AuthorID: &ana,
		})
		draftID := seedConsultation(db, &postgres.ConsultationModel{
			Title: "Rascunho", Body: "corpo com texto suficiente", Draft: true, AuthorID: &ana,
		})
		seedTagging(db, publicID, career)
		seedTagging(db, draftID, career)
		seedTagging(db, draftID, finance)

		tags, err := service.ListTags(context.Background())
		Expect(err).NotTo(HaveOccurred())

		Expect(tags).To(HaveLen(2))
		Expect(tags[0].Name).To(Equal("carreira"))
		Expect(tags[0].Count).To(Equal(int64(1)))
		Expect(tags[1].Name).To(Equal("finanças"))
		Expect(tags[1].Count).To(BeZero())
	})
})
