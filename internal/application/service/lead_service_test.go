package service_test

import (
	"bytes"
	"net/http"
	"testing"

	"github.com/sangkips/bizhub-api/internal/application/service"
	"github.com/sangkips/bizhub-api/internal/domain/entity"
	"github.com/sangkips/bizhub-api/internal/domain/enum"
	"github.com/sangkips/bizhub-api/internal/domain/repository"
	infraRepo "github.com/sangkips/bizhub-api/internal/infrastructure/repository"
	"github.com/sangkips/bizhub-api/internal/testutil"
	"github.com/sangkips/bizhub-api/pkg/pagination"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestLeadLifecycle(t *testing.T) {
	db := testutil.NewDB(t)
	svc := service.NewLeadService(infraRepo.NewLeadRepository(db))
	owner := testutil.CreateUser(t, db, "l@example.com", "user")
	_, ctx := testutil.CreateBusiness(t, db, owner, "Acme")

	_, err := svc.CreateLead(ctx, &service.LeadInput{UserID: owner.ID, Name: "X", Status: enum.LeadStatus(9)})
	assert.Equal(t, http.StatusUnprocessableEntity, appCode(t, err))

	lead, err := svc.CreateLead(ctx, &service.LeadInput{
		UserID: owner.ID,
		Name:   "Sipho Dlamini",
		Email:  strp("sipho@example.com"),
		Source: strp("referral"),
		Value:  decimal.NewFromInt(-50),
	})
	require.NoError(t, err)
	assert.Equal(t, enum.LeadStatusNew, lead.Status)
	assert.True(t, lead.Value.IsZero())

	qualified := enum.LeadStatusQualified
	_, err = svc.UpdateLead(ctx, &service.UpdateLeadInput{ID: lead.ID, Status: &qualified})
	require.NoError(t, err)

	_, err = svc.CreateLead(ctx, &service.LeadInput{UserID: owner.ID, Name: "Other"})
	require.NoError(t, err)

	page, err := svc.ListLeads(ctx, &repository.LeadFilterParams{
		Pagination: &pagination.PaginationParams{},
		Status:     &qualified,
	})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "Sipho Dlamini", page.Items[0].Name)

	converted, err := svc.ConvertLead(ctx, owner.ID, lead.ID)
	require.NoError(t, err)
	assert.Equal(t, enum.LeadStatusWon, converted.Status)
	require.NotNil(t, converted.CustomerID)
	assert.NotNil(t, converted.ConvertedAt)

	var customer entity.Customer
	require.NoError(t, db.First(&customer, "id = ?", *converted.CustomerID).Error)
	assert.Equal(t, "Sipho Dlamini", customer.Name)
	assert.Equal(t, "sipho@example.com", *customer.Email)

	_, err = svc.ConvertLead(ctx, owner.ID, lead.ID)
	assert.Equal(t, http.StatusConflict, appCode(t, err))

	require.NoError(t, svc.DeleteLead(ctx, lead.ID))
	_, err = svc.GetLead(ctx, lead.ID)
	assert.Equal(t, http.StatusNotFound, appCode(t, err))
}

func leadWorkbook(t *testing.T, rows [][]interface{}) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf
}

func TestImportLeads(t *testing.T) {
	db := testutil.NewDB(t)
	svc := service.NewLeadService(infraRepo.NewLeadRepository(db))
	owner := testutil.CreateUser(t, db, "i@example.com", "user")
	_, ctx := testutil.CreateBusiness(t, db, owner, "Acme")

	book := leadWorkbook(t, [][]interface{}{
		{"Name", "Email", "Phone", "Company", "Source", "Value", "Notes"},
		{"Lerato", "LERATO@example.com", "082 000 0001", "", "website", "1500.50", ""},
		{"", "nobody@example.com"},
		{"Duplicate", "lerato@example.com"},
		{"Bad Email", "not-an-email"},
		{"Johan", "", "", "Johan CC", "", "abc", "call back"},
	})

	rows, err := service.ParseLeadSheet(book)
	require.NoError(t, err)
	require.Len(t, rows, 5)

	result, err := svc.ImportLeads(ctx, owner.ID, rows)
	require.NoError(t, err)
	assert.Equal(t, 5, result.TotalRows)
	assert.Equal(t, 2, result.Successful)
	assert.Equal(t, 3, result.Failed)
	require.Len(t, result.Errors, 3)
	assert.Equal(t, service.ImportRowError{Row: 3, Field: "name", Message: "Name is required"}, result.Errors[0])
	assert.Equal(t, 4, result.Errors[1].Row)
	assert.Contains(t, result.Errors[1].Message, "same as row 2")
	assert.Equal(t, "email", result.Errors[2].Field)

	var leads []entity.Lead
	require.NoError(t, db.Order("name").Find(&leads).Error)
	require.Len(t, leads, 2)
	assert.Equal(t, "Johan", leads[0].Name)
	assert.True(t, leads[0].Value.IsZero())
	assert.Equal(t, "lerato@example.com", *leads[1].Email)
	assert.Equal(t, "1500.5", leads[1].Value.String())
}

func TestParseLeadSheetRequiresNameColumn(t *testing.T) {
	book := leadWorkbook(t, [][]interface{}{{"Email"}, {"a@example.com"}})
	_, err := service.ParseLeadSheet(book)
	assert.Equal(t, http.StatusUnprocessableEntity, appCode(t, err))

	_, err = service.ParseLeadSheet(bytes.NewBufferString("not a workbook"))
	assert.Equal(t, http.StatusBadRequest, appCode(t, err))
}
