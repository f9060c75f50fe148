package coldstart

import (
	"strings"

	"github.com/younsl/initcost/internal/models"
)

// Exclusion returns why a function is out of scope for init cost pricing.
// Only ZIP-packaged functions on managed runtimes report a billable Init Duration.
func Exclusion(cfg models.FunctionConfig) (models.SkipReason, string, bool) {
	if cfg.PackageType != models.PackageTypeZip {
		return models.SkipPackageType, cfg.PackageType, true
	}
	if strings.HasPrefix(cfg.Runtime, models.CustomRuntimePrefix) {
		return models.SkipCustomRuntime, cfg.Runtime, true
	}
	return "", "", false
}
