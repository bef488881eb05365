package designation_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"go-ems/internal/department"
	departmentMock "go-ems/internal/department/mock"
	"go-ems/internal/designation"
	designationerrors "go-ems/internal/designation/errors"
	designationMock "go-ems/internal/designation/mock"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"gorm.io/gorm"
)

type serviceDeps struct {
	db          *sql.DB
	sqlMock     sqlmock.Sqlmock
	service     designation.Service
	repo        *designationMock.MockRepository
	departments *departmentMock.MockRepository
}

func setupServiceTest(t *testing.T) *serviceDeps {
	ctrl := gomock.NewController(t)

	db, sqlMock, _ := sqlmock.New()
	repo := designationMock.NewMockRepository(ctrl)
	departments := departmentMock.NewMockRepository(ctrl)

	return &serviceDeps{
		db:          db,
		sqlMock:     sqlMock,
		service:     designation.NewService(db, repo, departments),
		repo:        repo,
		departments: departments,
	}
}

func expectTx(t *testing.T, mock sqlmock.Sqlmock, commit bool) {
	t.Helper()
	mock.ExpectBegin()
	if commit {
		mock.ExpectCommit()
	} else {
		mock.ExpectRollback()
	}
}

func TestDesignationService_Create(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()
	deptID := uuid.New()

	t.Run("success", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)
		deps.departments.EXPECT().WithTx(gomock.Any()).Return(deps.departments)
		deps.departments.EXPECT().
			FindByIDAndCompany(gomock.Any(), companyID, deptID.String()).
			Return(&department.Department{ID: deptID, Name: "Engineering"}, nil)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().
			FindByName(gomock.Any(), companyID, deptID.String(), "Backend Engineer").
			Return(nil, gorm.ErrRecordNotFound)
		deps.repo.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(ctx context.Context, d *designation.Designation) error {
				assert.Equal(t, deptID, d.DepartmentID)
				assert.Equal(t, "Backend Engineer", d.Name)
				return nil
			})

		resp, err := deps.service.Create(ctx, companyID, designation.CreateDesignationRequest{
			Name:         "Backend Engineer",
			DepartmentID: deptID.String(),
		})

		assert.NoError(t, err)
		assert.Equal(t, deptID.String(), resp.DepartmentID)
		assert.Equal(t, "Engineering", resp.DepartmentName)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative department of another company", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)
		deps.departments.EXPECT().WithTx(gomock.Any()).Return(deps.departments)
		deps.departments.EXPECT().
			FindByIDAndCompany(gomock.Any(), companyID, deptID.String()).
			Return(nil, gorm.ErrRecordNotFound)
		deps.repo.EXPECT().Create(gomock.Any(), gomock.Any()).Times(0)

		_, err := deps.service.Create(ctx, companyID, designation.CreateDesignationRequest{
			Name:         "Backend Engineer",
			DepartmentID: deptID.String(),
		})

		assert.ErrorIs(t, err, designationerrors.ErrDepartmentNotFound)
	})

	t.Run("negative duplicate name in department", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)
		deps.departments.EXPECT().WithTx(gomock.Any()).Return(deps.departments)
		deps.departments.EXPECT().
			FindByIDAndCompany(gomock.Any(), companyID, deptID.String()).
			Return(&department.Department{ID: deptID, Name: "Engineering"}, nil)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().
			FindByName(gomock.Any(), companyID, deptID.String(), "Backend Engineer").
			Return(&designation.Designation{ID: uuid.New()}, nil)

		_, err := deps.service.Create(ctx, companyID, designation.CreateDesignationRequest{
			Name:         "Backend Engineer",
			DepartmentID: deptID.String(),
		})

		assert.ErrorIs(t, err, designationerrors.ErrDesignationAlreadyExists)
	})

	t.Run("negative malformed department id", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)

		_, err := deps.service.Create(ctx, companyID, designation.CreateDesignationRequest{Name: "QA", DepartmentID: "abc"})

		assert.ErrorIs(t, err, designationerrors.ErrInvalidDepartmentID)
	})
}

func TestDesignationService_GetAll(t *testing.T) {
	deps := setupServiceTest(t)
	defer deps.db.Close()

	companyID := uuid.New().String()
	deptID := uuid.New()
	deps.repo.EXPECT().
		FindAllByCompany(gomock.Any(), companyID, deptID.String()).
		Return([]designation.Designation{{
			ID:           uuid.New(),
			DepartmentID: deptID,
			Department:   &designation.DesignationDepartment{ID: deptID, Name: "Finance"},
			Name:         "Accountant",
		}}, nil)

	resp, err := deps.service.GetAll(context.Background(), companyID, designation.GetDesignationsFilterRequest{DepartmentID: deptID.String()})

	assert.NoError(t, err)
	if assert.Len(t, resp, 1) {
		assert.Equal(t, "Finance", resp[0].DepartmentName)
	}
}

func TestDesignationService_Update(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()
	id := uuid.New()
	oldDept, newDept := uuid.New(), uuid.New()

	t.Run("success moves department", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().
			FindByIDAndCompany(gomock.Any(), companyID, id.String()).
			Return(&designation.Designation{ID: id, DepartmentID: oldDept, Name: "Analyst"}, nil)
		deps.departments.EXPECT().WithTx(gomock.Any()).Return(deps.departments)
		deps.departments.EXPECT().
			FindByIDAndCompany(gomock.Any(), companyID, newDept.String()).
			Return(&department.Department{ID: newDept, Name: "Finance"}, nil)
		deps.repo.EXPECT().
			FindByName(gomock.Any(), companyID, newDept.String(), "Analyst").
			Return(nil, gorm.ErrRecordNotFound)
		deps.repo.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil)

		resp, err := deps.service.Update(ctx, companyID, id.String(), designation.UpdateDesignationRequest{
			Name:         "Analyst",
			DepartmentID: newDept.String(),
		})

		assert.NoError(t, err)
		assert.Equal(t, newDept.String(), resp.DepartmentID)
		assert.Equal(t, "Finance", resp.DepartmentName)
	})

	t.Run("negative not found", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().
			FindByIDAndCompany(gomock.Any(), companyID, id.String()).
			Return(nil, gorm.ErrRecordNotFound)

		_, err := deps.service.Update(ctx, companyID, id.String(), designation.UpdateDesignationRequest{
			Name:         "Analyst",
			DepartmentID: newDept.String(),
		})

		assert.ErrorIs(t, err, designationerrors.ErrDesignationNotFound)
	})
}

func TestDesignationService_Delete(t *testing.T) {
	companyID := uuid.New().String()
	id := uuid.New().String()

	t.Run("success", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().Delete(gomock.Any(), companyID, id).Return(nil)

		assert.NoError(t, deps.service.Delete(context.Background(), companyID, id))
	})

	t.Run("negative db error", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().Delete(gomock.Any(), companyID, id).Return(errors.New("db error"))

		assert.Error(t, deps.service.Delete(context.Background(), companyID, id))
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}
