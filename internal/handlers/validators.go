package handlers

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/reliefops/disaster-relief-api/internal/models"
)

// Enum validations used by the request binding tags. Registered at package
// init so every handler picks them up regardless of wiring order.
func init() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}

	v.RegisterValidation("taskcategory", func(fl validator.FieldLevel) bool {
		switch models.TaskCategory(fl.Field().String()) {
		case models.TaskCategoryReliefDistribution, models.TaskCategorySearchAndRescue,
			models.TaskCategoryMedicalSupport, models.TaskCategoryLogistics,
			models.TaskCategoryCommunication, models.TaskCategoryFundraising,
			models.TaskCategoryAdministrative, models.TaskCategoryCleanup,
			models.TaskCategoryTransportation, models.TaskCategoryOther:
			return true
		}
		return false
	})

	v.RegisterValidation("taskpriority", func(fl validator.FieldLevel) bool {
		switch models.TaskPriority(fl.Field().String()) {
		case models.TaskPriorityLow, models.TaskPriorityMedium,
			models.TaskPriorityHigh, models.TaskPriorityCritical:
			return true
		}
		return false
	})

	v.RegisterValidation("disastertype", func(fl validator.FieldLevel) bool {
		switch models.DisasterType(fl.Field().String()) {
		case models.DisasterTypeFlood, models.DisasterTypeFire, models.DisasterTypeEarthquake,
			models.DisasterTypeHurricane, models.DisasterTypeTornado, models.DisasterTypeDrought,
			models.DisasterTypePandemic, models.DisasterTypeOther:
			return true
		}
		return false
	})

	v.RegisterValidation("incidentseverity", func(fl validator.FieldLevel) bool {
		switch models.IncidentSeverity(fl.Field().String()) {
		case models.IncidentSeverityLow, models.IncidentSeverityMedium,
			models.IncidentSeverityHigh, models.IncidentSeverityCritical:
			return true
		}
		return false
	})

	v.RegisterValidation("donationtype", func(fl validator.FieldLevel) bool {
		switch models.DonationType(fl.Field().String()) {
		case models.DonationTypePhysical, models.DonationTypeFinancial, models.DonationTypeService:
			return true
		}
		return false
	})
}
