package config

import (
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// Read-only scopes: the importer never writes back to Drive.
var googleScopes = []string{
	"https://www.googleapis.com/auth/drive.readonly",
	"https://www.googleapis.com/auth/spreadsheets.readonly",
}

// GoogleOAuthConfig builds the OAuth2 config for the Drive/Sheets
// connection from the environment.
func GoogleOAuthConfig() *oauth2.Config {
	return &oauth2.Config{
		ClientID:     GetEnv("GOOGLE_CLIENT_ID"),
		ClientSecret: GetEnv("GOOGLE_CLIENT_SECRET"),
		RedirectURL:  GetEnvDefault("GOOGLE_REDIRECT_URI", "http://localhost:8083/api/v1/auth/google/callback"),
		Scopes:       googleScopes,
		Endpoint:     google.Endpoint,
	}
}

// DriveRootFolderID is the Drive folder holding one sub-folder per employee.
func DriveRootFolderID() string {
	return GetEnv("GOOGLE_DRIVE_ROOT_FOLDER_ID")
}

// TesterSpreadsheetID is the shared tester results spreadsheet.
func TesterSpreadsheetID() string {
	return GetEnv("GOOGLE_TESTER_SPREADSHEET_ID")
}
