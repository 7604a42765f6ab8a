package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/jurisdesk/jurisdesk-backend/internal/common"
	"github.com/jurisdesk/jurisdesk-backend/internal/domain"
	"github.com/jurisdesk/jurisdesk-backend/internal/repository"
)

const testUserID = "user-1"

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	err = db.AutoMigrate(
		&domain.Template{},
		&domain.GeneratedDocument{},
		&domain.DocumentVersion{},
		&domain.Client{},
		&domain.Case{},
	)
	require.NoError(t, err)
	return db
}

func setupAutomationService(t *testing.T) (*AutomationService, *gorm.DB) {
	t.Helper()
	db := setupTestDB(t)

	templateRepo := repository.NewTemplateRepository(db)
	documentRepo := repository.NewDocumentRepository(db)
	versionRepo := repository.NewVersionRepository(db)
	clientRepo := repository.NewClientRepository(db)
	caseRepo := repository.NewCaseRepository(db)
	autoFill := NewAutoFillService(clientRepo, caseRepo, nil)

	return NewAutomationService(templateRepo, documentRepo, versionRepo, autoFill, nil, nil), db
}

func createTestTemplate(t *testing.T, db *gorm.DB, content string) *domain.Template {
	t.Helper()
	template := &domain.Template{
		ID:           uuid.New().String(),
		UserID:       testUserID,
		Name:         "Procuração Ad Judicia",
		Category:     domain.CategoryProcuracao,
		Content:      content,
		Placeholders: domain.StringList{},
	}
	require.NoError(t, db.Create(template).Error)
	return template
}

func createTestClient(t *testing.T, db *gorm.DB) *domain.Client {
	t.Helper()
	client := &domain.Client{
		ID:      uuid.New().String(),
		UserID:  testUserID,
		Name:    "Maria Oliveira",
		CPFCNPJ: "123.456.789-00",
		Email:   "maria@example.com",
		Phone:   "+55 11 91234-5678",
	}
	require.NoError(t, db.Create(client).Error)
	return client
}

func TestGenerate_MergesAutoFillAndManualValues(t *testing.T) {
	svc, db := setupAutomationService(t)
	ctx := context.Background()

	client := createTestClient(t, db)
	template := createTestTemplate(t, db, "Eu, {{cliente.nome}}, CPF {{cliente.cpf_cnpj}}, nomeio {{advogado.nome}}.")

	result, err := svc.Generate(ctx, testUserID, &domain.GenerateRequest{
		TemplateID:   template.ID,
		ClientID:     client.ID,
		Placeholders: map[string]string{"advogado.nome": "Dr. Carlos Souza"},
	})
	require.NoError(t, err)

	assert.Equal(t, "Eu, Maria Oliveira, CPF 123.456.789-00, nomeio Dr. Carlos Souza.", result.Document.Content)
	assert.Equal(t, 1, result.Document.Version)
	assert.Equal(t, domain.StatusDraft, result.Document.Status)
	assert.Equal(t, domain.CategoryProcuracao, result.Document.Category)
	assert.Empty(t, result.UnresolvedPlaceholders)
	assert.False(t, result.AutoFillUnavailable)

	// Generation counts as template usage
	var stored domain.Template
	require.NoError(t, db.First(&stored, "id = ?", template.ID).Error)
	assert.Equal(t, 1, stored.UsageCount)
}

func TestGenerate_ReportsUnresolvedPlaceholders(t *testing.T) {
	svc, db := setupAutomationService(t)

	template := createTestTemplate(t, db, "Contrato de {{servico}} firmado por {{cliente.nome}}.")

	result, err := svc.Generate(context.Background(), testUserID, &domain.GenerateRequest{
		TemplateID:   template.ID,
		Placeholders: map[string]string{"servico": "consultoria"},
	})
	require.NoError(t, err)

	// Without a client reference cliente.* stays as literal markup
	assert.Equal(t, "Contrato de consultoria firmado por {{cliente.nome}}.", result.Document.Content)
	assert.Equal(t, []string{"cliente.nome"}, result.UnresolvedPlaceholders)
}

func TestGenerate_ManualValueOverridesAutoFill(t *testing.T) {
	svc, db := setupAutomationService(t)

	client := createTestClient(t, db)
	template := createTestTemplate(t, db, "Nome: {{cliente.nome}}")

	result, err := svc.Generate(context.Background(), testUserID, &domain.GenerateRequest{
		TemplateID:   template.ID,
		ClientID:     client.ID,
		Placeholders: map[string]string{"cliente.nome": "Maria O. Santos"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Nome: Maria O. Santos", result.Document.Content)
}

func TestGenerate_EscapesValuesByDefault(t *testing.T) {
	svc, db := setupAutomationService(t)

	template := createTestTemplate(t, db, "Cláusula: {{clausula}}")

	result, err := svc.Generate(context.Background(), testUserID, &domain.GenerateRequest{
		TemplateID:   template.ID,
		Placeholders: map[string]string{"clausula": "<b>Foro & Comarca</b>"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Cláusula: &lt;b&gt;Foro &amp; Comarca&lt;/b&gt;", result.Document.Content)

	noEscape := false
	result, err = svc.Generate(context.Background(), testUserID, &domain.GenerateRequest{
		TemplateID:   template.ID,
		Placeholders: map[string]string{"clausula": "<b>Foro & Comarca</b>"},
		EscapeValues: &noEscape,
	})
	require.NoError(t, err)
	assert.Equal(t, "Cláusula: <b>Foro & Comarca</b>", result.Document.Content)
}

func TestGenerate_UnknownTemplateAndClient(t *testing.T) {
	svc, db := setupAutomationService(t)

	_, err := svc.Generate(context.Background(), testUserID, &domain.GenerateRequest{
		TemplateID: uuid.New().String(),
	})
	assert.ErrorIs(t, err, common.ErrTemplateNotFound)

	template := createTestTemplate(t, db, "Olá {{cliente.nome}}")
	_, err = svc.Generate(context.Background(), testUserID, &domain.GenerateRequest{
		TemplateID: template.ID,
		ClientID:   uuid.New().String(),
	})
	assert.ErrorIs(t, err, common.ErrClientNotFound)
}

func TestGenerate_AutoFillFailureModes(t *testing.T) {
	svc, db := setupAutomationService(t)

	client := createTestClient(t, db)
	template := createTestTemplate(t, db, "Olá {{cliente.nome}}")

	// Break the lookup source to simulate an unavailable CRM store
	require.NoError(t, db.Migrator().DropTable(&domain.Client{}))

	_, err := svc.Generate(context.Background(), testUserID, &domain.GenerateRequest{
		TemplateID:     template.ID,
		ClientID:       client.ID,
		StrictAutoFill: true,
	})
	assert.ErrorIs(t, err, common.ErrAutoFillUnavailable)

	result, err := svc.Generate(context.Background(), testUserID, &domain.GenerateRequest{
		TemplateID: template.ID,
		ClientID:   client.ID,
	})
	require.NoError(t, err)
	assert.True(t, result.AutoFillUnavailable)
	assert.Equal(t, "Olá {{cliente.nome}}", result.Document.Content)
	assert.Equal(t, []string{"cliente.nome"}, result.UnresolvedPlaceholders)
}

func TestAssemble_RequiresAtLeastTwoTemplates(t *testing.T) {
	svc, db := setupAutomationService(t)
	template := createTestTemplate(t, db, "Parte única")

	for _, ids := range [][]string{nil, {}, {template.ID}} {
		_, err := svc.Assemble(context.Background(), testUserID, &domain.AssemblyRequest{TemplateIDs: ids})
		assert.ErrorIs(t, err, common.ErrInvalidAssemblyInput)
	}
}

func TestAssemble_PreservesRequestOrder(t *testing.T) {
	svc, db := setupAutomationService(t)

	first := createTestTemplate(t, db, "PROCURAÇÃO de {{cliente.nome}}")
	second := createTestTemplate(t, db, "DECLARAÇÃO anexa")
	third := createTestTemplate(t, db, "CONTRATO nº {{numero}}")

	result, err := svc.Assemble(context.Background(), testUserID, &domain.AssemblyRequest{
		TemplateIDs:  []string{third.ID, first.ID, second.ID},
		Placeholders: map[string]string{"numero": "42", "cliente.nome": "Maria Oliveira"},
	})
	require.NoError(t, err)

	expected := "CONTRATO nº 42\n\n---\n\nPROCURAÇÃO de Maria Oliveira\n\n---\n\nDECLARAÇÃO anexa"
	assert.Equal(t, expected, result.Document.Content)
	assert.Equal(t, domain.CategoryOutro, result.Document.Category)
	assert.Equal(t, "Documento Combinado", result.Document.Title)
	assert.Equal(t, []string{third.ID, first.ID, second.ID}, []string(result.Document.TemplateIDs))
}

func TestAssemble_CustomSeparator(t *testing.T) {
	svc, db := setupAutomationService(t)

	first := createTestTemplate(t, db, "Parte A")
	second := createTestTemplate(t, db, "Parte B")

	result, err := svc.Assemble(context.Background(), testUserID, &domain.AssemblyRequest{
		TemplateIDs: []string{first.ID, second.ID},
		Separator:   "\n<hr>\n",
	})
	require.NoError(t, err)
	assert.Equal(t, "Parte A\n<hr>\nParte B", result.Document.Content)
}

func TestUpdateDocument_ContentChangeArchivesPriorVersion(t *testing.T) {
	svc, db := setupAutomationService(t)
	ctx := context.Background()

	template := createTestTemplate(t, db, "Versão inicial")
	result, err := svc.Generate(ctx, testUserID, &domain.GenerateRequest{TemplateID: template.ID})
	require.NoError(t, err)
	docID := result.Document.ID

	newContent := "Versão revisada"
	updated, err := svc.UpdateDocument(ctx, testUserID, docID, &domain.DocumentUpdateRequest{Content: &newContent})
	require.NoError(t, err)
	assert.Equal(t, 2, updated.Version)
	assert.Equal(t, "Versão revisada", updated.Content)

	history, err := svc.ListVersions(ctx, testUserID, docID)
	require.NoError(t, err)
	require.Len(t, history.Versions, 1)
	assert.Equal(t, 1, history.Versions[0].VersionNumber)
	assert.Equal(t, "Versão inicial", history.Versions[0].Content)
}

func TestUpdateDocument_IdenticalContentIsNoOp(t *testing.T) {
	svc, db := setupAutomationService(t)
	ctx := context.Background()

	template := createTestTemplate(t, db, "Mesmo conteúdo")
	result, err := svc.Generate(ctx, testUserID, &domain.GenerateRequest{TemplateID: template.ID})
	require.NoError(t, err)

	same := "Mesmo conteúdo"
	updated, err := svc.UpdateDocument(ctx, testUserID, result.Document.ID, &domain.DocumentUpdateRequest{Content: &same})
	require.NoError(t, err)
	assert.Equal(t, 1, updated.Version)

	history, err := svc.ListVersions(ctx, testUserID, result.Document.ID)
	require.NoError(t, err)
	assert.Empty(t, history.Versions)
}

func TestUpdateDocument_MetadataOnlyNeverBumpsVersion(t *testing.T) {
	svc, db := setupAutomationService(t)
	ctx := context.Background()

	template := createTestTemplate(t, db, "Conteúdo estável")
	result, err := svc.Generate(ctx, testUserID, &domain.GenerateRequest{TemplateID: template.ID})
	require.NoError(t, err)

	for _, status := range []string{domain.StatusReview, domain.StatusApproved, domain.StatusSigned, domain.StatusDraft} {
		s := status
		updated, err := svc.UpdateDocument(ctx, testUserID, result.Document.ID, &domain.DocumentUpdateRequest{Status: &s})
		require.NoError(t, err)
		assert.Equal(t, 1, updated.Version)
		assert.Equal(t, status, updated.Status)
	}

	history, err := svc.ListVersions(ctx, testUserID, result.Document.ID)
	require.NoError(t, err)
	assert.Empty(t, history.Versions)
}

func TestUpdateDocument_SkipVersionStillBumpsCounter(t *testing.T) {
	svc, db := setupAutomationService(t)
	ctx := context.Background()

	template := createTestTemplate(t, db, "Rascunho")
	result, err := svc.Generate(ctx, testUserID, &domain.GenerateRequest{TemplateID: template.ID})
	require.NoError(t, err)

	newContent := "Rascunho corrigido"
	skip := false
	updated, err := svc.UpdateDocument(ctx, testUserID, result.Document.ID, &domain.DocumentUpdateRequest{
		Content:       &newContent,
		CreateVersion: &skip,
	})
	require.NoError(t, err)
	assert.Equal(t, 2, updated.Version)

	history, err := svc.ListVersions(ctx, testUserID, result.Document.ID)
	require.NoError(t, err)
	assert.Empty(t, history.Versions, "skipping archival must not write a snapshot")
}

func TestUpdateDocument_VersionMonotonicity(t *testing.T) {
	svc, db := setupAutomationService(t)
	ctx := context.Background()

	template := createTestTemplate(t, db, "v1")
	result, err := svc.Generate(ctx, testUserID, &domain.GenerateRequest{TemplateID: template.ID})
	require.NoError(t, err)

	contents := []string{"v2", "v3", "v4", "v5"}
	for _, c := range contents {
		content := c
		_, err := svc.UpdateDocument(ctx, testUserID, result.Document.ID, &domain.DocumentUpdateRequest{Content: &content})
		require.NoError(t, err)
	}

	history, err := svc.ListVersions(ctx, testUserID, result.Document.ID)
	require.NoError(t, err)
	assert.Equal(t, 1+len(contents), history.Document.Version)
	require.Len(t, history.Versions, len(contents))

	// Newest first, numbers contiguous from 1
	for i, v := range history.Versions {
		assert.Equal(t, len(contents)-i, v.VersionNumber)
	}
}

func TestRestoreVersion_IsItselfAVersionedUpdate(t *testing.T) {
	svc, db := setupAutomationService(t)
	ctx := context.Background()

	template := createTestTemplate(t, db, "Texto original")
	result, err := svc.Generate(ctx, testUserID, &domain.GenerateRequest{TemplateID: template.ID})
	require.NoError(t, err)
	docID := result.Document.ID

	edited := "Texto editado"
	_, err = svc.UpdateDocument(ctx, testUserID, docID, &domain.DocumentUpdateRequest{Content: &edited})
	require.NoError(t, err)

	restored, err := svc.RestoreVersion(ctx, testUserID, docID, 1)
	require.NoError(t, err)
	assert.Equal(t, "Texto original", restored.Content)
	assert.Equal(t, 3, restored.Version)

	// The pre-restore content was archived, so the restore can be undone
	history, err := svc.ListVersions(ctx, testUserID, docID)
	require.NoError(t, err)
	require.Len(t, history.Versions, 2)
	assert.Equal(t, 2, history.Versions[0].VersionNumber)
	assert.Equal(t, "Texto editado", history.Versions[0].Content)

	undone, err := svc.RestoreVersion(ctx, testUserID, docID, 2)
	require.NoError(t, err)
	assert.Equal(t, "Texto editado", undone.Content)
	assert.Equal(t, 4, undone.Version)
}

func TestRestoreVersion_IdenticalContentIsNoOp(t *testing.T) {
	svc, db := setupAutomationService(t)
	ctx := context.Background()

	template := createTestTemplate(t, db, "Texto A")
	result, err := svc.Generate(ctx, testUserID, &domain.GenerateRequest{TemplateID: template.ID})
	require.NoError(t, err)
	docID := result.Document.ID

	edited := "Texto B"
	_, err = svc.UpdateDocument(ctx, testUserID, docID, &domain.DocumentUpdateRequest{Content: &edited})
	require.NoError(t, err)
	_, err = svc.RestoreVersion(ctx, testUserID, docID, 1)
	require.NoError(t, err)

	// Current content is "Texto A" again; restoring v1 once more changes nothing
	doc, err := svc.RestoreVersion(ctx, testUserID, docID, 1)
	require.NoError(t, err)
	assert.Equal(t, 3, doc.Version)

	history, err := svc.ListVersions(ctx, testUserID, docID)
	require.NoError(t, err)
	assert.Len(t, history.Versions, 2)
}

func TestRestoreVersion_UnknownVersion(t *testing.T) {
	svc, db := setupAutomationService(t)
	ctx := context.Background()

	template := createTestTemplate(t, db, "Texto")
	result, err := svc.Generate(ctx, testUserID, &domain.GenerateRequest{TemplateID: template.ID})
	require.NoError(t, err)

	_, err = svc.RestoreVersion(ctx, testUserID, result.Document.ID, 7)
	assert.ErrorIs(t, err, common.ErrVersionNotFound)
}

func TestDeleteDocument_RemovesVersionHistory(t *testing.T) {
	svc, db := setupAutomationService(t)
	ctx := context.Background()

	template := createTestTemplate(t, db, "Texto")
	result, err := svc.Generate(ctx, testUserID, &domain.GenerateRequest{TemplateID: template.ID})
	require.NoError(t, err)
	docID := result.Document.ID

	edited := "Texto 2"
	_, err = svc.UpdateDocument(ctx, testUserID, docID, &domain.DocumentUpdateRequest{Content: &edited})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteDocument(ctx, testUserID, docID))

	_, err = svc.GetDocument(ctx, testUserID, docID)
	assert.ErrorIs(t, err, common.ErrDocumentNotFound)

	var count int64
	require.NoError(t, db.Model(&domain.DocumentVersion{}).Where("document_id = ?", docID).Count(&count).Error)
	assert.Zero(t, count)
}

func TestDocumentOwnership(t *testing.T) {
	svc, db := setupAutomationService(t)
	ctx := context.Background()

	template := createTestTemplate(t, db, "Texto sigiloso")
	result, err := svc.Generate(ctx, testUserID, &domain.GenerateRequest{TemplateID: template.ID})
	require.NoError(t, err)

	_, err = svc.GetDocument(ctx, "user-2", result.Document.ID)
	assert.ErrorIs(t, err, common.ErrDocumentNotFound)

	err = svc.DeleteDocument(ctx, "user-2", result.Document.ID)
	assert.ErrorIs(t, err, common.ErrDocumentNotFound)
}

func TestExport_WithoutStorageConfigured(t *testing.T) {
	svc, db := setupAutomationService(t)
	ctx := context.Background()

	template := createTestTemplate(t, db, "Texto")
	result, err := svc.Generate(ctx, testUserID, &domain.GenerateRequest{TemplateID: template.ID})
	require.NoError(t, err)

	_, err = svc.Export(ctx, testUserID, result.Document.ID)
	assert.ErrorIs(t, err, common.ErrStorageUnavailable)
}

func TestStats_CountsByStatusAndCategory(t *testing.T) {
	svc, db := setupAutomationService(t)
	ctx := context.Background()

	template := createTestTemplate(t, db, "Texto")
	for i := 0; i < 3; i++ {
		_, err := svc.Generate(ctx, testUserID, &domain.GenerateRequest{TemplateID: template.ID})
		require.NoError(t, err)
	}
	result, err := svc.Generate(ctx, testUserID, &domain.GenerateRequest{TemplateID: template.ID})
	require.NoError(t, err)
	approved := domain.StatusApproved
	_, err = svc.UpdateDocument(ctx, testUserID, result.Document.ID, &domain.DocumentUpdateRequest{Status: &approved})
	require.NoError(t, err)

	stats, err := svc.Stats(ctx, testUserID)
	require.NoError(t, err)
	assert.Equal(t, int64(4), stats.Total)
	assert.Equal(t, int64(3), stats.ByStatus[domain.StatusDraft])
	assert.Equal(t, int64(1), stats.ByStatus[domain.StatusApproved])
	assert.Equal(t, int64(4), stats.ByCategory[domain.CategoryProcuracao])
}
