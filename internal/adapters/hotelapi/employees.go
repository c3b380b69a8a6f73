package hotelapi

import (
	"context"
	"fmt"
	"net/http"

	"hotelhub/internal/domain"
)

func (c *Client) ListEmployees(ctx context.Context, hotelID int64) ([]domain.Employee, error) {
	var out []domain.Employee
	err := c.doJSON(ctx, http.MethodGet, "/employees/hotel/{id}", fmt.Sprintf("/employees/hotel/%d", hotelID), nil, &out)
	return out, err
}

func (c *Client) CreateEmployee(ctx context.Context, e domain.Employee) (domain.Employee, error) {
	var out domain.Employee
	err := c.doJSON(ctx, http.MethodPost, "/employees/", "/employees/", e, &out)
	return out, err
}

func (c *Client) UpdateEmployee(ctx context.Context, id int64, e domain.Employee) (domain.Employee, error) {
	var out domain.Employee
	err := c.doJSON(ctx, http.MethodPut, "/employees/{id}", fmt.Sprintf("/employees/%d", id), e, &out)
	return out, err
}

func (c *Client) DeleteEmployee(ctx context.Context, id int64) error {
	return c.doJSON(ctx, http.MethodDelete, "/employees/{id}", fmt.Sprintf("/employees/%d", id), nil, nil)
}

func (c *Client) SalaryHistory(ctx context.Context, employeeID int64) ([]domain.SalaryRecord, error) {
	var out []domain.SalaryRecord
	err := c.doJSON(ctx, http.MethodGet, "/employees/{id}/salary-history", fmt.Sprintf("/employees/%d/salary-history", employeeID), nil, &out)
	return out, err
}
