package service

import (
	"bytes"
	"context"
	"fmt"

	"fleetrental-backend/internal/apperr"
	"fleetrental-backend/internal/domain"
	"fleetrental-backend/internal/notify"
	"fleetrental-backend/internal/repository"
	"fleetrental-backend/internal/storage"
)

type documentService struct {
	contractRepo repository.ContractRepository
	userRepo     repository.UserRepository
	artifacts    storage.ArtifactStore
	dispatcher   *notify.Dispatcher
	gate         roleGate
}

func NewDocumentService(
	contractRepo repository.ContractRepository,
	userRepo repository.UserRepository,
	artifacts storage.ArtifactStore,
	dispatcher *notify.Dispatcher,
) DocumentService {
	return &documentService{
		contractRepo: contractRepo,
		userRepo:     userRepo,
		artifacts:    artifacts,
		dispatcher:   dispatcher,
		gate:         newRoleGate(userRepo),
	}
}

// RenderContract writes a printable contract sheet to the artifact store
// and returns its filesystem path. Admins, the contract holder and the
// vehicle's supplier may render; anyone else is refused.
func (s *documentService) RenderContract(ctx context.Context, contractID, actorID int32) (string, error) {
	actor, err := s.gate.resolve(ctx, actorID)
	if err != nil {
		return "", err
	}

	details, err := s.contractRepo.GetDetails(ctx, contractID)
	if err != nil {
		return "", err
	}
	if !canViewContract(actor, details) {
		return "", apperr.Authorization("contract %d is not visible to this account", contractID)
	}

	handle, err := s.artifacts.Save(fmt.Sprintf("contract-%d.txt", contractID), renderContractSheet(details))
	if err != nil {
		return "", apperr.Unavailable(err)
	}

	s.dispatcher.Enqueue(notify.Message{
		To:      details.User.Email,
		ToName:  details.User.Name,
		Subject: "Contract document ready",
		Body: fmt.Sprintf("Hello %s,\n\nThe document for your rental contract #%d has been generated.\n\nBest regards,\nThe Fleet Team",
			details.User.Name, contractID),
	})

	return s.artifacts.Open(handle)
}

func renderContractSheet(d *domain.ContractDetails) []byte {
	var buf bytes.Buffer
	days := int(d.Contract.EndDate.Sub(d.Contract.StartDate).Hours()/24) + 1

	fmt.Fprintf(&buf, "RENTAL CONTRACT #%d\n", d.Contract.ID)
	fmt.Fprintf(&buf, "Signed: %s\n\n", d.Contract.SignedAt.Format("2006-01-02 15:04"))
	fmt.Fprintf(&buf, "Holder:   %s <%s>\n", d.User.Name, d.User.Email)
	if d.Supplier != nil {
		fmt.Fprintf(&buf, "Supplier: %s <%s>\n", d.Supplier.Name, d.Supplier.Email)
	}
	fmt.Fprintf(&buf, "Vehicle:  %s %s (%s, %d km)\n",
		d.Vehicle.Make, d.Vehicle.Model, d.Vehicle.FuelType, d.Vehicle.Mileage)
	fmt.Fprintf(&buf, "Period:   %s to %s (%d days)\n",
		d.Contract.StartDate.Format("2006-01-02"),
		d.Contract.EndDate.Format("2006-01-02"), days)
	fmt.Fprintf(&buf, "Total:    %.2f (%.2f per day)\n",
		float64(days)*float64(d.Vehicle.DailyPriceCents)/100,
		float64(d.Vehicle.DailyPriceCents)/100)
	fmt.Fprintf(&buf, "Status:   %s\n", d.Contract.Status)
	return buf.Bytes()
}
