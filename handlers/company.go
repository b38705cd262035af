package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"presupro/config"
)

type companyProfileJSON struct {
	Name string `json:"nombre"`
	Logo string `json:"logo"`
}

// companyDefaults resolves the fallback identity for a quote: the user's
// stored profile when one exists, the configured defaults otherwise.
func companyDefaults(app *pocketbase.PocketBase, userID string, cfg *config.Config) (string, string) {
	name, logo := cfg.Company.Name, cfg.Company.Logo
	if userID == "" {
		return name, logo
	}

	rec, err := app.FindFirstRecordByFilter(
		"company_profiles",
		"user = {:user}",
		map[string]any{"user": userID},
	)
	if err != nil {
		return name, logo
	}
	if n := rec.GetString("name"); n != "" {
		name = n
	}
	if l := rec.GetString("logo"); l != "" {
		logo = l
	}
	return name, logo
}

// HandleCompanyGet handles GET /company. Users without a stored profile
// get the configured default identity.
func HandleCompanyGet(app *pocketbase.PocketBase, cfg *config.Config) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		userID, ok := requireUser(e)
		if !ok {
			return nil
		}

		profile := companyProfileJSON{
			Name: cfg.Company.Name,
			Logo: cfg.Company.Logo,
		}

		rec, err := app.FindFirstRecordByFilter(
			"company_profiles",
			"user = {:user}",
			map[string]any{"user": userID},
		)
		if err == nil {
			if name := rec.GetString("name"); name != "" {
				profile.Name = name
			}
			if logo := rec.GetString("logo"); logo != "" {
				profile.Logo = logo
			}
		}

		return e.JSON(http.StatusOK, profile)
	}
}

// HandleCompanySave handles POST /company, creating or updating the
// per-user profile. Names are stored upper-cased the way the document
// displays them.
func HandleCompanySave(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		userID, ok := requireUser(e)
		if !ok {
			return nil
		}

		var payload companyProfileJSON
		if err := json.NewDecoder(e.Request.Body).Decode(&payload); err != nil {
			return e.JSON(http.StatusBadRequest, map[string]string{"error": "invalid profile payload"})
		}

		rec, err := app.FindFirstRecordByFilter(
			"company_profiles",
			"user = {:user}",
			map[string]any{"user": userID},
		)
		if err != nil {
			col, err := app.FindCollectionByNameOrId("company_profiles")
			if err != nil {
				log.Printf("company_save: could not find collection: %v", err)
				return e.JSON(http.StatusInternalServerError, map[string]string{"error": "could not save profile"})
			}
			rec = core.NewRecord(col)
			rec.Set("user", userID)
		}

		if name := strings.TrimSpace(payload.Name); name != "" {
			rec.Set("name", strings.ToUpper(name))
		}
		if logo := strings.TrimSpace(payload.Logo); logo != "" {
			rec.Set("logo", logo)
		}

		if err := app.Save(rec); err != nil {
			log.Printf("company_save: save failed for user %s: %v", userID, err)
			return e.JSON(http.StatusInternalServerError, map[string]string{"error": "could not save profile"})
		}

		return e.JSON(http.StatusOK, companyProfileJSON{
			Name: rec.GetString("name"),
			Logo: rec.GetString("logo"),
		})
	}
}
