// Package validator checks that a canonical record carries the fields any
// destination needs to create it. Every violated rule is reported; nothing
// short-circuits.
package validator

import (
	"fmt"
	"strings"

	playground "github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/jafarshop/storemigrate/internal/domain"
	"github.com/jafarshop/storemigrate/internal/normalize"
)

// Result is the outcome of validating one record
type Result struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors,omitempty"`
}

// Validator holds the format checker shared by all rules
type Validator struct {
	fields *playground.Validate
}

// New creates a Validator
func New() *Validator {
	return &Validator{fields: playground.New()}
}

var (
	std     = New()
	hundred = decimal.NewFromInt(100)
)

// Validate checks record with the default Validator
func Validate(record domain.Canonical, entity domain.EntityType) Result {
	return std.Validate(record, entity)
}

// checker accumulates rule violations for one record
type checker struct {
	v      *Validator
	errors []string
}

func (c *checker) fail(format string, args ...interface{}) {
	c.errors = append(c.errors, fmt.Sprintf(format, args...))
}

func (c *checker) required(field, value string) bool {
	if strings.TrimSpace(value) == "" {
		c.fail("%s is required", field)
		return false
	}
	return true
}

// money reports a malformed amount; blanks are left to required
func (c *checker) money(field, value string) {
	if strings.TrimSpace(value) != "" && !normalize.IsMoney(value) {
		c.fail("%s must be a decimal amount, got %q", field, value)
	}
}

func (c *checker) email(field, value string) {
	if strings.TrimSpace(value) == "" {
		return
	}
	if err := c.v.fields.Var(strings.TrimSpace(value), "email"); err != nil {
		c.fail("%s %q is not a valid email address", field, value)
	}
}

// Validate checks record against the rules of entity
func (v *Validator) Validate(record domain.Canonical, entity domain.EntityType) Result {
	c := &checker{v: v}

	switch {
	case record == nil:
		c.fail("%s record is missing", entity)
	case record.EntityType() != entity:
		c.fail("expected a %s record, got %s", entity, record.EntityType())
	default:
		switch r := record.(type) {
		case domain.Product:
			c.product(r)
		case domain.Customer:
			c.customer(r)
		case domain.Order:
			c.order(r)
		case domain.Collection:
			c.required("name", r.Name)
		case domain.Coupon:
			c.coupon(r)
		case domain.Page:
			c.required("title", r.Title)
			c.contentStatus(r.Status)
		case domain.BlogPost:
			c.required("title", r.Title)
			c.contentStatus(r.Status)
		case domain.Review:
			c.review(r)
		default:
			c.fail("no validation rules for %T", record)
		}
	}

	return Result{Valid: len(c.errors) == 0, Errors: c.errors}
}

func (c *checker) product(p domain.Product) {
	c.required("name", p.Name)
	if c.required("price", p.Price) {
		c.money("price", p.Price)
	}
	c.money("compareAtPrice", p.CompareAtPrice)
	if p.Status != "" && !p.Status.IsValid() {
		c.fail("status %q is not a known product status", p.Status)
	}

	if len(p.Variants) == 0 {
		c.fail("at least one variant is required")
	}
	for i, variant := range p.Variants {
		c.money(fmt.Sprintf("variants[%d].price", i), variant.Price)
	}
}

func (c *checker) customer(cu domain.Customer) {
	if c.required("email", cu.Email) {
		c.email("email", cu.Email)
	}
	if strings.TrimSpace(cu.FirstName) == "" && strings.TrimSpace(cu.LastName) == "" {
		c.fail("firstName or lastName is required")
	}
}

func (c *checker) order(o domain.Order) {
	if len(o.LineItems) == 0 {
		c.fail("at least one line item is required")
	}
	if c.required("totalPrice", o.TotalPrice) {
		c.money("totalPrice", o.TotalPrice)
	}
	c.email("email", o.Email)
	c.money("subtotalPrice", o.SubtotalPrice)
	c.money("totalTax", o.TotalTax)
	c.money("totalShipping", o.TotalShipping)
	c.money("totalDiscounts", o.TotalDiscounts)

	if o.FinancialStatus != "" && !o.FinancialStatus.IsValid() {
		c.fail("financialStatus %q is not a known status", o.FinancialStatus)
	}
	if o.FulfillmentStatus != "" && !o.FulfillmentStatus.IsValid() {
		c.fail("fulfillmentStatus %q is not a known status", o.FulfillmentStatus)
	}

	for i, li := range o.LineItems {
		if li.Quantity <= 0 {
			c.fail("lineItems[%d].quantity must be positive", i)
		}
		c.money(fmt.Sprintf("lineItems[%d].price", i), li.Price)
	}
}

func (c *checker) coupon(cp domain.Coupon) {
	c.required("code", cp.Code)
	if c.required("amount", cp.Amount) {
		c.money("amount", cp.Amount)
	}
	if c.required("discountType", string(cp.DiscountType)) && !cp.DiscountType.IsValid() {
		c.fail("discountType %q is not a known discount type", cp.DiscountType)
	}
	c.money("minimumAmount", cp.MinimumAmount)

	if cp.DiscountType == domain.DiscountTypePercentage {
		if d, ok := normalize.ParseMoney(cp.Amount); ok && (d.IsNegative() || d.GreaterThan(hundred)) {
			c.fail("percentage amount must be between 0 and 100, got %s", cp.Amount)
		}
	}
}

func (c *checker) contentStatus(s domain.ContentStatus) {
	if s != "" && !s.IsValid() {
		c.fail("status %q is not a known content status", s)
	}
}

func (c *checker) review(r domain.Review) {
	c.required("productId", r.ProductID)
	if r.Rating < 1 || r.Rating > 5 {
		c.fail("rating must be between 1 and 5, got %d", r.Rating)
	}
}
