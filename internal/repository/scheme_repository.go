package repository

import (
	"budget-admin/internal/models"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

type SchemeRepository struct {
	db *sqlx.DB
}

func NewSchemeRepository(db *sqlx.DB) *SchemeRepository {
	return &SchemeRepository{db: db}
}

func (r *SchemeRepository) FindAll(limit, offset int, search string) ([]models.Scheme, int, error) {
	var schemes []models.Scheme
	var total int

	whereClause := ""
	args := []interface{}{}

	if search != "" {
		whereClause = "WHERE scheme_code LIKE ? OR scheme_name LIKE ?"
		searchPattern := "%" + search + "%"
		args = append(args, searchPattern, searchPattern)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM schemes %s", whereClause)
	err := r.db.Get(&total, countQuery, args...)
	if err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`
		SELECT id,
		       scheme_code,
		       scheme_name,
		       department_id,
		       total_budget_provision,
		       progressive_allotment,
		       actual_expenditure_dec,
		       percent_budget_exp,
		       percent_actual_exp,
		       provisional_current_month,
		       created_at,
		       updated_at
		FROM schemes %s
		ORDER BY scheme_code
		LIMIT ? OFFSET ?`, whereClause)
	args = append(args, limit, offset)
	err = r.db.Select(&schemes, query, args...)
	if err != nil {
		return nil, 0, err
	}

	return schemes, total, nil
}

func (r *SchemeRepository) FindByID(id int) (*models.Scheme, error) {
	var scheme models.Scheme
	query := "SELECT * FROM schemes WHERE id = ? LIMIT 1"
	err := r.db.Get(&scheme, query, id)
	if err != nil {
		return nil, err
	}
	return &scheme, nil
}

// FindByCode looks up a scheme by its natural key. Returns (nil, nil)
// when no scheme with that code exists.
func (r *SchemeRepository) FindByCode(code string) (*models.Scheme, error) {
	var scheme models.Scheme
	query := "SELECT * FROM schemes WHERE scheme_code = ? LIMIT 1"
	err := r.db.Get(&scheme, query, code)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &scheme, nil
}

func (r *SchemeRepository) Create(scheme *models.Scheme) error {
	query := `INSERT INTO schemes (scheme_code, scheme_name, department_id,
	          total_budget_provision, progressive_allotment, actual_expenditure_dec,
	          percent_budget_exp, percent_actual_exp, provisional_current_month)
	          VALUES (:scheme_code, :scheme_name, :department_id,
	          :total_budget_provision, :progressive_allotment, :actual_expenditure_dec,
	          :percent_budget_exp, :percent_actual_exp, :provisional_current_month)`
	result, err := r.db.NamedExec(query, scheme)
	if err != nil {
		return err
	}
	id, _ := result.LastInsertId()
	scheme.ID = int(id)
	return nil
}

func (r *SchemeRepository) Update(scheme *models.Scheme) error {
	query := `UPDATE schemes SET scheme_name = :scheme_name,
	          total_budget_provision = :total_budget_provision,
	          progressive_allotment = :progressive_allotment,
	          actual_expenditure_dec = :actual_expenditure_dec,
	          percent_budget_exp = :percent_budget_exp,
	          percent_actual_exp = :percent_actual_exp,
	          provisional_current_month = :provisional_current_month
	          WHERE id = :id`
	_, err := r.db.NamedExec(query, scheme)
	return err
}

func (r *SchemeRepository) Delete(id int) error {
	query := "DELETE FROM schemes WHERE id = ?"
	_, err := r.db.Exec(query, id)
	return err
}

func (r *SchemeRepository) GetAll() ([]models.Scheme, error) {
	var schemes []models.Scheme
	query := "SELECT * FROM schemes ORDER BY scheme_code"
	err := r.db.Select(&schemes, query)
	return schemes, err
}
