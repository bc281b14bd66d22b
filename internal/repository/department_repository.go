package repository

import (
	"budget-admin/internal/models"

	"github.com/jmoiron/sqlx"
)

type DepartmentRepository struct {
	db *sqlx.DB
}

func NewDepartmentRepository(db *sqlx.DB) *DepartmentRepository {
	return &DepartmentRepository{db: db}
}

func (r *DepartmentRepository) FindAll() ([]models.Department, error) {
	var departments []models.Department
	query := "SELECT * FROM departments ORDER BY name"
	err := r.db.Select(&departments, query)
	return departments, err
}

func (r *DepartmentRepository) FindByID(id int) (*models.Department, error) {
	var department models.Department
	query := "SELECT * FROM departments WHERE id = ? LIMIT 1"
	err := r.db.Get(&department, query, id)
	if err != nil {
		return nil, err
	}
	return &department, nil
}

func (r *DepartmentRepository) Create(department *models.Department) error {
	query := `INSERT INTO departments (name, is_active) VALUES (:name, :is_active)`
	result, err := r.db.NamedExec(query, department)
	if err != nil {
		return err
	}
	id, _ := result.LastInsertId()
	department.ID = int(id)
	return nil
}

func (r *DepartmentRepository) Update(department *models.Department) error {
	query := `UPDATE departments SET name = :name, is_active = :is_active WHERE id = :id`
	_, err := r.db.NamedExec(query, department)
	return err
}

func (r *DepartmentRepository) Delete(id int) error {
	query := "DELETE FROM departments WHERE id = ?"
	_, err := r.db.Exec(query, id)
	return err
}
