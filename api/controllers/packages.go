package controllers

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/venuehq/venuehq-backend/api/responses"
	"github.com/venuehq/venuehq-backend/api/validators"
	"github.com/venuehq/venuehq-backend/internal/packages"
	pkgerrors "github.com/venuehq/venuehq-backend/pkg/errors"
	"github.com/venuehq/venuehq-backend/pkg/logger"
)

type packageRuleRequest struct {
	InventoryItemID   string          `json:"inventoryItemId" validate:"required,uuid"`
	QtyPerGuest       decimal.Decimal `json:"qtyPerGuest"`
	IsSubstitutable   bool            `json:"isSubstitutable"`
	SubstitutionGroup *string         `json:"substitutionGroup"`
}

type packageCreateRequest struct {
	Name                   string               `json:"name" validate:"required"`
	Description            *string              `json:"description"`
	BasePriceCents         int                  `json:"basePriceCents" validate:"min=0"`
	DefaultDurationMinutes int                  `json:"defaultDurationMinutes"`
	IncludesPremiumSpirits bool                 `json:"includesPremiumSpirits"`
	IsActive               *bool                `json:"isActive"`
	Rules                  []packageRuleRequest `json:"rules"`
}

type packageUpdateRequest struct {
	Name                   *string `json:"name"`
	Description            *string `json:"description"`
	BasePriceCents         *int    `json:"basePriceCents"`
	DefaultDurationMinutes *int    `json:"defaultDurationMinutes"`
	IncludesPremiumSpirits *bool   `json:"includesPremiumSpirits"`
	IsActive               *bool   `json:"isActive"`
}

type packageRulesReplaceRequest struct {
	Rules []packageRuleRequest `json:"rules"`
}

func toRuleInputs(rules []packageRuleRequest) ([]packages.RuleInput, error) {
	out := make([]packages.RuleInput, 0, len(rules))
	for _, rule := range rules {
		itemID, err := uuid.Parse(strings.TrimSpace(rule.InventoryItemID))
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid inventoryItemId")
		}
		out = append(out, packages.RuleInput{
			InventoryItemID:   itemID,
			QtyPerGuest:       rule.QtyPerGuest,
			IsSubstitutable:   rule.IsSubstitutable,
			SubstitutionGroup: rule.SubstitutionGroup,
		})
	}
	return out, nil
}

// PackageCreate handles creating an event package with its consumption rules.
func PackageCreate(svc packages.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "package service unavailable"))
			return
		}

		orgID, err := organizationID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload packageCreateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		rules, err := toRuleInputs(payload.Rules)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := packages.CreatePackageInput{
			Name:                   payload.Name,
			Description:            payload.Description,
			BasePriceCents:         payload.BasePriceCents,
			DefaultDurationMinutes: payload.DefaultDurationMinutes,
			IncludesPremiumSpirits: payload.IncludesPremiumSpirits,
			IsActive:               true,
			Rules:                  rules,
		}
		if payload.IsActive != nil {
			input.IsActive = *payload.IsActive
		}

		created, err := svc.CreatePackage(r.Context(), orgID, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, created)
	}
}

// PackageFetch returns one package with its rules.
func PackageFetch(svc packages.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "package service unavailable"))
			return
		}

		orgID, err := organizationID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		packageID, err := pathUUID(r, "packageId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		pkg, err := svc.GetPackage(r.Context(), orgID, packageID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, pkg)
	}
}

// PackageList returns every package in the organization.
func PackageList(svc packages.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "package service unavailable"))
			return
		}

		orgID, err := organizationID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		list, err := svc.ListPackages(r.Context(), orgID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

// PackageUpdate mutates package metadata without touching rules.
func PackageUpdate(svc packages.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "package service unavailable"))
			return
		}

		orgID, err := organizationID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		packageID, err := pathUUID(r, "packageId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload packageUpdateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		updated, err := svc.UpdatePackage(r.Context(), orgID, packageID, packages.UpdatePackageInput{
			Name:                   payload.Name,
			Description:            payload.Description,
			BasePriceCents:         payload.BasePriceCents,
			DefaultDurationMinutes: payload.DefaultDurationMinutes,
			IncludesPremiumSpirits: payload.IncludesPremiumSpirits,
			IsActive:               payload.IsActive,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, updated)
	}
}

// PackageDelete removes a package and its rules.
func PackageDelete(svc packages.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "package service unavailable"))
			return
		}

		orgID, err := organizationID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		packageID, err := pathUUID(r, "packageId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.DeletePackage(r.Context(), orgID, packageID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

// PackageRulesReplace swaps a package's rule set atomically.
func PackageRulesReplace(svc packages.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "package service unavailable"))
			return
		}

		orgID, err := organizationID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		packageID, err := pathUUID(r, "packageId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload packageRulesReplaceRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		rules, err := toRuleInputs(payload.Rules)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		updated, err := svc.ReplaceRules(r.Context(), orgID, packageID, rules)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, updated)
	}
}
