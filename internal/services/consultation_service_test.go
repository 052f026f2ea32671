package services_test

import (
	"context"
	"errors"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/gorm"

	apperrors "github.com/rafabene/consulta-backend/internal/domain/errors"
	"github.com/rafabene/consulta-backend/internal/domain/repositories"
	"github.com/rafabene/consulta-backend/internal/infrastructure/persistence/postgres"
	"github.com/rafabene/consulta-backend/internal/services"
)

var _ = Describe("ConsultationService", func() {
	var (
		ctx     context.Context
		db      *gorm.DB
		repo    repositories.ConsultationRepository
		service *services.ConsultationService

		ana, bruno            uint
		tagFinance, tagHealth uint
	)

	BeforeEach(func() {
		ctx = context.Background()
		db = newTestDB()
		repo = postgres.NewConsultationRepository(db)
		service = services.NewConsultationService(repo, postgres.NewUnitOfWork(db), testLogger{})

		ana = seedUser(db, "Ana")
		bruno = seedUser(db, "Bruno")
		tagFinance = seedTag(db, "finanças", 1)
		tagHealth = seedTag(db, "saúde", 2)
	})

	expectKind := func(err error, kind apperrors.Kind) {
		GinkgoHelper()
		var domainErr *apperrors.DomainError
		Expect(errors.As(err, &domainErr)).To(BeTrue(), "esperava DomainError, obteve %v", err)
		Expect(domainErr.Kind).To(Equal(kind))
	}

	Describe("ListConsultations", func() {
		var publicID, draftAnaID, hiddenAnaID uint

		BeforeEach(func() {
			publicID = seedConsultation(db, &postgres.ConsultationModel{
				Title: "Pública", Body: "corpo com texto suficiente", AuthorID: &ana,
			})
			draftAnaID = seedConsultation(db, &postgres.ConsultationModel{
				Title: "Rascunho da Ana", Body: "corpo com texto suficiente", Draft: true, AuthorID: &ana,
			})
			seedConsultation(db, &postgres.ConsultationModel{
				Title: "Rascunho do Bruno", Body: "corpo com texto suficiente", Draft: true, AuthorID: &bruno,
			})
			hiddenAnaID = seedConsultation(db, &postgres.ConsultationModel{
				Title: "Ocultada da Ana", Body: "corpo com texto suficiente", AuthorID: &ana,
				HiddenAt: ptrMilli(time.Now()),
			})
		})

		It("sem filtro de rascunho retorna apenas públicas", func() {
			list, err := service.ListConsultations(ctx, services.ListConsultationsInput{}, &bruno)
			Expect(err).NotTo(HaveOccurred())

			Expect(list.TotalItems).To(Equal(int64(1)))
			Expect(list.Consultations).To(HaveLen(1))
			Expect(list.Consultations[0].ID).To(Equal(publicID))
		})

		It("consulta ocultada aparece apenas para a própria autora", func() {
			list, err := service.ListConsultations(ctx, services.ListConsultationsInput{}, &ana)
			Expect(err).NotTo(HaveOccurred())

			ids := make([]uint, len(list.Consultations))
			for i, c := range list.Consultations {
				ids[i] = c.ID
			}
			Expect(ids).To(ConsistOf(publicID, hiddenAnaID))
		})

		It("draft=true retorna apenas os rascunhos do próprio solicitante", func() {
			draft := true
			// O filtro de autor explícito é ignorado: rascunhos são sempre os próprios
			list, err := service.ListConsultations(ctx, services.ListConsultationsInput{
				Draft:  &draft,
				UserID: &bruno,
			}, &ana)
			Expect(err).NotTo(HaveOccurred())

			Expect(list.Consultations).To(HaveLen(1))
			Expect(list.Consultations[0].ID).To(Equal(draftAnaID))
		})

		It("solicitante anônimo pedindo rascunhos recebe resultado vazio", func() {
			draft := true
			list, err := service.ListConsultations(ctx, services.ListConsultationsInput{Draft: &draft}, nil)
			Expect(err).NotTo(HaveOccurred())

			Expect(list.Consultations).To(BeEmpty())
			Expect(list.TotalItems).To(BeZero())
		})

		It("draft=false explícito se comporta como o default", func() {
			draft := false
			list, err := service.ListConsultations(ctx, services.ListConsultationsInput{Draft: &draft}, &bruno)
			Expect(err).NotTo(HaveOccurred())

			Expect(list.Consultations).To(HaveLen(1))
			Expect(list.Consultations[0].ID).To(Equal(publicID))
		})
	})

	Describe("GetConsultation", func() {
		It("consulta inexistente produz NotFound", func() {
			_, err := service.GetConsultation(ctx, 9999, ana)
			expectKind(err, apperrors.KindNotFound)
		})

		It("rascunho alheio produz o mesmo NotFound, sem vazar existência", func() {
			id := seedConsultation(db, &postgres.ConsultationModel{
				Title: "Rascunho", Body: "corpo com texto suficiente", Draft: true, AuthorID: &ana,
			})

			_, err := service.GetConsultation(ctx, id, bruno)
			expectKind(err, apperrors.KindNotFound)
		})

		It("rascunho próprio é visível", func() {
			id := seedConsultation(db, &postgres.ConsultationModel{
				Title: "Rascunho", Body: "corpo com texto suficiente", Draft: true, AuthorID: &ana,
			})

			consultation, err := service.GetConsultation(ctx, id, ana)
			Expect(err).NotTo(HaveOccurred())
			Expect(consultation.ID).To(Equal(id))
		})

		It("consulta ocultada só é visível para a autora", func() {
			id := seedConsultation(db, &postgres.ConsultationModel{
				Title: "Ocultada", Body: "corpo com texto suficiente", AuthorID: &ana,
				HiddenAt: ptrMilli(time.Now()),
			})

			_, err := service.GetConsultation(ctx, id, bruno)
			expectKind(err, apperrors.KindNotFound)

			consultation, err := service.GetConsultation(ctx, id, ana)
			Expect(err).NotTo(HaveOccurred())
			Expect(consultation.IsHidden()).To(BeTrue())
		})

		It("consulta resolvida permanece visível para todos", func() {
			id := seedConsultation(db, &postgres.ConsultationModel{
				Title: "Resolvida", Body: "corpo com texto suficiente", AuthorID: &ana,
				SolvedAt: ptrMilli(time.Now()),
			})

			consultation, err := service.GetConsultation(ctx, id, bruno)
			Expect(err).NotTo(HaveOccurred())
			Expect(consultation.IsSolved()).To(BeTrue())
		})
	})

	Describe("CreateConsultation", func() {
		It("pública sem tags é rejeitada antes de qualquer escrita", func() {
			_, err := service.CreateConsultation(ctx, services.CreateConsultationInput{
				Title: "Sem tags", Body: "corpo com texto suficiente", Draft: false,
			}, ana)
			expectKind(err, apperrors.KindValidation)

			var count int64
			Expect(db.Model(&postgres.ConsultationModel{}).Count(&count).Error).To(Succeed())
			Expect(count).To(BeZero())
		})

		It("mais de três tags é rejeitada", func() {
			_, err := service.CreateConsultation(ctx, services.CreateConsultationInput{
				Title: "Excesso", Body: "corpo com texto suficiente", Draft: true,
				TagIDs: []uint{1, 2, 3, 4},
			}, ana)
			expectKind(err, apperrors.KindValidation)
		})

		It("rascunho sem tags é permitido", func() {
			consultation, err := service.CreateConsultation(ctx, services.CreateConsultationInput{
				Title: "Rascunho", Body: "corpo com texto suficiente", Draft: true,
			}, ana)
			Expect(err).NotTo(HaveOccurred())
			Expect(consultation.Draft).To(BeTrue())
			Expect(consultation.Tags).To(BeEmpty())
		})

		It("cria pública com tags e recarrega autor e tags", func() {
			consultation, err := service.CreateConsultation(ctx, services.CreateConsultationInput{
				Title: "Com tags", Body: "corpo com texto suficiente", Draft: false,
				TagIDs: []uint{tagFinance, tagHealth},
			}, ana)
			Expect(err).NotTo(HaveOccurred())

			Expect(consultation.Author).NotTo(BeNil())
			Expect(consultation.Author.Name).To(Equal("Ana"))
			Expect(consultation.Tags).To(HaveLen(2))
		})

		It("tag repetida não viola a chave composta de vínculos", func() {
			consultation, err := service.CreateConsultation(ctx, services.CreateConsultationInput{
				Title: "Tag repetida", Body: "corpo com texto suficiente", Draft: false,
				TagIDs: []uint{tagFinance, tagFinance},
			}, ana)
			Expect(err).NotTo(HaveOccurred())
			Expect(consultation.Tags).To(HaveLen(1))

			var taggings int64
			Expect(db.Model(&postgres.ConsultationTaggingModel{}).Count(&taggings).Error).To(Succeed())
			Expect(taggings).To(Equal(int64(1)))
		})

		It("tag desconhecida produz Conflict e a compensação remove a consulta", func() {
			_, err := service.CreateConsultation(ctx, services.CreateConsultationInput{
				Title: "Tag fantasma", Body: "corpo com texto suficiente", Draft: false,
				TagIDs: []uint{tagFinance, 999},
			}, ana)
			expectKind(err, apperrors.KindConflict)

			var count int64
			Expect(db.Model(&postgres.ConsultationModel{}).Count(&count).Error).To(Succeed())
			Expect(count).To(BeZero(), "a consulta criada deveria ter sido removida pela compensação")

			var taggings int64
			Expect(db.Model(&postgres.ConsultationTaggingModel{}).Count(&taggings).Error).To(Succeed())
			Expect(taggings).To(BeZero())
		})
	})

	Describe("UpdateConsultation", func() {
		var id uint

		BeforeEach(func() {
			id = seedConsultation(db, &postgres.ConsultationModel{
				Title: "Título original", Body: "corpo com texto suficiente", AuthorID: &ana,
			})
			seedTagging(db, id, tagFinance)
		})

		It("consulta inexistente produz NotFound", func() {
			_, err := service.UpdateConsultation(ctx, 9999, services.UpdateConsultationInput{
				Title: "Novo", Body: "corpo com texto suficiente", Draft: true,
			}, ana)
			expectKind(err, apperrors.KindNotFound)
		})

		It("quem não é dono recebe Forbidden", func() {
			_, err := service.UpdateConsultation(ctx, id, services.UpdateConsultationInput{
				Title: "Invasão", Body: "corpo com texto suficiente", Draft: false,
				TagIDs: []uint{tagFinance},
			}, bruno)
			expectKind(err, apperrors.KindForbidden)
		})

		It("a regra de tags vale também na atualização", func() {
			_, err := service.UpdateConsultation(ctx, id, services.UpdateConsultationInput{
				Title: "Sem tags", Body: "corpo com texto suficiente", Draft: false,
			}, ana)
			expectKind(err, apperrors.KindValidation)
		})

		It("atualiza colunas e substitui as tags", func() {
			updated, err := service.UpdateConsultation(ctx, id, services.UpdateConsultationInput{
				Title: "Título revisado", Body: "corpo revisado com texto suficiente", Draft: false,
				TagIDs: []uint{tagHealth},
			}, ana)
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.Title).To(Equal("Título revisado"))

			reloaded, err := repo.FindByID(ctx, id)
			Expect(err).NotTo(HaveOccurred())
			Expect(reloaded.Title).To(Equal("Título revisado"))
			Expect(reloaded.Tags).To(HaveLen(1))
			Expect(reloaded.Tags[0].ID).To(Equal(tagHealth))
		})

		It("tag desconhecida desfaz a atualização inteira", func() {
			_, err := service.UpdateConsultation(ctx, id, services.UpdateConsultationInput{
				Title: "Não deve persistir", Body: "corpo com texto suficiente", Draft: false,
				TagIDs: []uint{tagHealth, 999},
			}, ana)
			expectKind(err, apperrors.KindConflict)

			reloaded, err := repo.FindByID(ctx, id)
			Expect(err).NotTo(HaveOccurred())
			Expect(reloaded.Title).To(Equal("Título original"), "o título não pode mudar quando as tags falham")
			Expect(reloaded.Tags).To(HaveLen(1))
			Expect(reloaded.Tags[0].ID).To(Equal(tagFinance))
		})
	})
})

func ptrMilli(t time.Time) *int64 {
	v := t.UnixMilli()
	return &v
}
