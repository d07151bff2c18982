package orders

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/meridian-bms/meridian/internal/listing"
)

// Service validates order forms and composes them into API submissions.
type Service struct {
	repo RepositoryPort
}

// NewService constructs the orders service.
func NewService(repo RepositoryPort) *Service {
	return &Service{repo: repo}
}

// LineInput is the common editable triple of every order line. Delivered
// and Fulfilled are only read for the order kinds that carry them.
type LineInput struct {
	ProductID int64
	Quantity  decimal.Decimal
	UnitPrice decimal.Decimal
	Delivered decimal.Decimal
	Fulfilled decimal.Decimal
}

// PurchaseInput is the purchase order form payload.
type PurchaseInput struct {
	VendorID     int64
	Status       PurchaseStatus
	OrderDate    time.Time
	ExpectedDate time.Time
	Note         string
	Lines        []LineInput
}

// SaleInput is the sale order form payload.
type SaleInput struct {
	ClientID  int64
	Status    SaleStatus
	OrderDate time.Time
	Note      string
	Lines     []LineInput
}

// RequisitionInput is the requisition order form payload.
type RequisitionInput struct {
	SourceBranchID      int64
	DestinationBranchID int64
	Status              RequisitionStatus
	RequestDate         time.Time
	Note                string
	Lines               []LineInput
}

func validateLines(lines []LineInput) error {
	if len(lines) == 0 {
		return fmt.Errorf("%w: at least one line item required", ErrValidation)
	}
	for _, line := range lines {
		if line.ProductID <= 0 {
			return fmt.Errorf("%w: product required on every line", ErrValidation)
		}
		if !line.Quantity.IsPositive() {
			return fmt.Errorf("%w: quantity must be positive", ErrValidation)
		}
		if line.UnitPrice.IsNegative() {
			return fmt.Errorf("%w: unit price cannot be negative", ErrValidation)
		}
	}
	return nil
}

// ListPurchase fetches all purchase orders for the company and applies the
// page filters in memory.
func (s *Service) ListPurchase(ctx context.Context, companyID int64, filters listing.Filters) ([]PurchaseOrder, error) {
	all, err := s.repo.ListPurchase(ctx, companyID)
	if err != nil {
		return nil, err
	}
	return listing.Apply(all, func(o PurchaseOrder) bool {
		return filters.MatchesSearch(o.Number, o.VendorName, o.Note) &&
			filters.MatchesStatus(string(o.Status))
	}), nil
}

// GetPurchase fetches a single purchase order.
func (s *Service) GetPurchase(ctx context.Context, companyID, orderID int64) (PurchaseOrder, error) {
	return s.repo.GetPurchase(ctx, companyID, orderID)
}

// CreatePurchase validates and submits a new purchase order.
func (s *Service) CreatePurchase(ctx context.Context, companyID int64, input PurchaseInput) (PurchaseOrder, error) {
	order, err := buildPurchase(companyID, 0, input)
	if err != nil {
		return PurchaseOrder{}, err
	}
	return s.repo.CreatePurchase(ctx, companyID, order)
}

// UpdatePurchase validates and submits an edited purchase order.
func (s *Service) UpdatePurchase(ctx context.Context, companyID, orderID int64, input PurchaseInput) (PurchaseOrder, error) {
	order, err := buildPurchase(companyID, orderID, input)
	if err != nil {
		return PurchaseOrder{}, err
	}
	return s.repo.UpdatePurchase(ctx, companyID, order)
}

// DeletePurchase removes a purchase order.
func (s *Service) DeletePurchase(ctx context.Context, companyID, orderID int64) error {
	return s.repo.DeletePurchase(ctx, companyID, orderID)
}

func buildPurchase(companyID, orderID int64, input PurchaseInput) (PurchaseOrder, error) {
	if input.VendorID <= 0 {
		return PurchaseOrder{}, fmt.Errorf("%w: vendor required", ErrValidation)
	}
	if input.Status.Label() == unknownStatus {
		return PurchaseOrder{}, fmt.Errorf("%w: unknown status %q", ErrValidation, string(input.Status))
	}
	if err := validateLines(input.Lines); err != nil {
		return PurchaseOrder{}, err
	}
	order := PurchaseOrder{
		ID:           orderID,
		CompanyID:    companyID,
		VendorID:     input.VendorID,
		Status:       input.Status,
		OrderDate:    input.OrderDate,
		ExpectedDate: input.ExpectedDate,
		Note:         input.Note,
	}
	for _, line := range input.Lines {
		item := PurchaseItem{ProductID: line.ProductID, UnitPrice: line.UnitPrice}
		item.SetOrdered(line.Quantity)
		item.SetDelivered(line.Delivered)
		order.Items = append(order.Items, item)
	}
	return order, nil
}

// ListSales fetches all sale orders for the branch and filters in memory.
func (s *Service) ListSales(ctx context.Context, branchID int64, filters listing.Filters) ([]SaleOrder, error) {
	all, err := s.repo.ListSales(ctx, branchID)
	if err != nil {
		return nil, err
	}
	return listing.Apply(all, func(o SaleOrder) bool {
		return filters.MatchesSearch(o.Number, o.ClientName, o.Note) &&
			filters.MatchesStatus(string(o.Status))
	}), nil
}

// GetSale fetches a single sale order.
func (s *Service) GetSale(ctx context.Context, branchID, orderID int64) (SaleOrder, error) {
	return s.repo.GetSale(ctx, branchID, orderID)
}

// CreateSale validates and submits a new sale order.
func (s *Service) CreateSale(ctx context.Context, branchID int64, input SaleInput) (SaleOrder, error) {
	order, err := buildSale(branchID, 0, input)
	if err != nil {
		return SaleOrder{}, err
	}
	return s.repo.CreateSale(ctx, branchID, order)
}

// UpdateSale validates and submits an edited sale order.
func (s *Service) UpdateSale(ctx context.Context, branchID, orderID int64, input SaleInput) (SaleOrder, error) {
	order, err := buildSale(branchID, orderID, input)
	if err != nil {
		return SaleOrder{}, err
	}
	return s.repo.UpdateSale(ctx, branchID, order)
}

// DeleteSale removes a sale order.
func (s *Service) DeleteSale(ctx context.Context, branchID, orderID int64) error {
	return s.repo.DeleteSale(ctx, branchID, orderID)
}

func buildSale(branchID, orderID int64, input SaleInput) (SaleOrder, error) {
	if input.ClientID <= 0 {
		return SaleOrder{}, fmt.Errorf("%w: client required", ErrValidation)
	}
	if input.Status.Label() == unknownStatus {
		return SaleOrder{}, fmt.Errorf("%w: unknown status %q", ErrValidation, string(input.Status))
	}
	if err := validateLines(input.Lines); err != nil {
		return SaleOrder{}, err
	}
	order := SaleOrder{
		ID:        orderID,
		BranchID:  branchID,
		ClientID:  input.ClientID,
		Status:    input.Status,
		OrderDate: input.OrderDate,
		Note:      input.Note,
	}
	for _, line := range input.Lines {
		order.Items = append(order.Items, SaleItem{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
		})
	}
	return order, nil
}

// ListRequisitions fetches requisitions for the branch and filters in memory.
func (s *Service) ListRequisitions(ctx context.Context, branchID int64, filters listing.Filters) ([]RequisitionOrder, error) {
	all, err := s.repo.ListRequisitions(ctx, branchID)
	if err != nil {
		return nil, err
	}
	return listing.Apply(all, func(o RequisitionOrder) bool {
		return filters.MatchesSearch(o.Number, o.Note) &&
			filters.MatchesStatus(string(o.Status))
	}), nil
}

// GetRequisition fetches a single requisition order.
func (s *Service) GetRequisition(ctx context.Context, branchID, orderID int64) (RequisitionOrder, error) {
	return s.repo.GetRequisition(ctx, branchID, orderID)
}

// CreateRequisition validates and submits a new requisition order.
func (s *Service) CreateRequisition(ctx context.Context, branchID int64, input RequisitionInput) (RequisitionOrder, error) {
	order, err := buildRequisition(0, input)
	if err != nil {
		return RequisitionOrder{}, err
	}
	return s.repo.CreateRequisition(ctx, branchID, order)
}

// UpdateRequisition validates and submits an edited requisition order.
func (s *Service) UpdateRequisition(ctx context.Context, branchID, orderID int64, input RequisitionInput) (RequisitionOrder, error) {
	order, err := buildRequisition(orderID, input)
	if err != nil {
		return RequisitionOrder{}, err
	}
	return s.repo.UpdateRequisition(ctx, branchID, order)
}

func buildRequisition(orderID int64, input RequisitionInput) (RequisitionOrder, error) {
	if input.SourceBranchID <= 0 || input.DestinationBranchID <= 0 {
		return RequisitionOrder{}, fmt.Errorf("%w: source and destination branches required", ErrValidation)
	}
	if input.SourceBranchID == input.DestinationBranchID {
		return RequisitionOrder{}, fmt.Errorf("%w: source and destination must differ", ErrValidation)
	}
	if input.Status.Label() == unknownStatus {
		return RequisitionOrder{}, fmt.Errorf("%w: unknown status %q", ErrValidation, string(input.Status))
	}
	if err := validateLines(input.Lines); err != nil {
		return RequisitionOrder{}, err
	}
	order := RequisitionOrder{
		ID:                  orderID,
		SourceBranchID:      input.SourceBranchID,
		DestinationBranchID: input.DestinationBranchID,
		Status:              input.Status,
		RequestDate:         input.RequestDate,
		Note:                input.Note,
	}
	for _, line := range input.Lines {
		item := RequisitionItem{ProductID: line.ProductID, UnitPrice: line.UnitPrice}
		item.SetRequested(line.Quantity)
		item.SetFulfilled(line.Fulfilled)
		order.Items = append(order.Items, item)
	}
	return order, nil
}
