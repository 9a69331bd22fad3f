package errors

import "sort"

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category   Category
	Message    string
	Suggestion string
}

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// ============================================
	// Hook Errors (W001-W002, W007)
	// ============================================

	"W001": {
		Category:   CategoryHook,
		Message:    "Hook called outside of component context",
		Suggestion: "Call hooks only from the body of a component render function.",
	},
	"W002": {
		Category:   CategoryHook,
		Message:    "Hook order changed between renders",
		Suggestion: "Call hooks unconditionally and in the same order on every render.",
	},
	"W007": {
		Category: CategoryEffect,
		Message:  "Effect failed",
	},

	// ============================================
	// Scheduler Errors (W003-W004, W008, W010)
	// ============================================

	"W003": {
		Category:   CategoryScheduler,
		Message:    "Cannot render into an already mounted container",
		Suggestion: "Unmount the container first, or render with the portal option.",
	},
	"W004": {
		Category: CategoryScheduler,
		Message:  "Container must be empty for initial render",
	},
	"W008": {
		Category: CategoryScheduler,
		Message:  "Container element is required",
	},
	"W010": {
		Category: CategoryScheduler,
		Message:  "Loop did not settle within the frame budget",
	},

	// ============================================
	// Node Errors (W005-W006, W009)
	// ============================================

	"W005": {
		Category: CategoryPortal,
		Message:  "Portal target not found",
	},
	"W006": {
		Category: CategoryContext,
		Message:  "Context Provider expects exactly one child element",
	},
	"W009": {
		Category: CategoryRender,
		Message:  "Component panicked during render",
	},

	// ============================================
	// Configuration / CLI Errors (W020-W029)
	// ============================================

	"W020": {
		Category: CategoryConfig,
		Message:  "Invalid configuration",
	},
	"W021": {
		Category: CategoryConfig,
		Message:  "Failed to read configuration file",
	},
	"W022": {
		Category: CategoryCLI,
		Message:  "Snapshot export failed",
	},
	"W023": {
		Category:   CategoryCLI,
		Message:    "Command failed",
		Suggestion: "Run with --help for usage.",
	},
}

// GetAllCodes returns all registered error codes, sorted.
func GetAllCodes() []string {
	codes := make([]string, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// GetTemplate returns the template for an error code.
func GetTemplate(code string) (ErrorTemplate, bool) {
	t, ok := registry[code]
	return t, ok
}
