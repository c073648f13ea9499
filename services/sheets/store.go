package sheets

import (
	"context"
	"errors"
	"fmt"
	"strings"

	apperrors "cazinoureview/errors"

	"golang.org/x/oauth2"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
	gsheets "google.golang.org/api/sheets/v4"
)

// ErrReauthRequired signals that no usable Google token exists and the
// operator must go through the consent flow again.
var ErrReauthRequired = errors.New("google authorization required")

// IsReauthError reports whether err means the Drive connection needs
// re-authorization rather than a transient failure.
func IsReauthError(err error) bool {
	if errors.Is(err, ErrReauthRequired) {
		return true
	}
	// oauth2 reports a revoked/expired refresh token as invalid_grant.
	return err != nil && strings.Contains(err.Error(), "invalid_grant")
}

// Folder is one employee container in the document store.
type Folder struct {
	ID     string
	Handle string
}

// Store is the narrow read interface the importer depends on.
type Store interface {
	RootFolder(ctx context.Context) (name string, err error)
	ListEmployeeFolders(ctx context.Context) ([]Folder, error)
	FindSpreadsheet(ctx context.Context, folderID string) (spreadsheetID string, err error)
	ListSheetTitles(ctx context.Context, spreadsheetID string) ([]string, error)
	ReadRows(ctx context.Context, spreadsheetID, sheetTitle string, maxRows int) ([][]interface{}, error)
}

// Employee folders are named "WORK @handle" in the shared Drive.
const folderHandlePrefix = "WORK "

// GoogleStore implements Store over the Drive and Sheets read APIs.
type GoogleStore struct {
	drive        *drive.Service
	sheets       *gsheets.Service
	rootFolderID string
}

// NewGoogleStore builds a GoogleStore from an authorized token source.
func NewGoogleStore(ctx context.Context, ts oauth2.TokenSource, rootFolderID string) (*GoogleStore, error) {
	driveSvc, err := drive.NewService(ctx, option.WithTokenSource(ts))
	if err != nil {
		return nil, fmt.Errorf("drive service: %w", err)
	}

	sheetsSvc, err := gsheets.NewService(ctx, option.WithTokenSource(ts))
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}

	return &GoogleStore{
		drive:        driveSvc,
		sheets:       sheetsSvc,
		rootFolderID: rootFolderID,
	}, nil
}

func (s *GoogleStore) RootFolder(ctx context.Context) (string, error) {
	f, err := s.drive.Files.Get(s.rootFolderID).Fields("id", "name").Context(ctx).Do()
	if err != nil {
		return "", apperrors.NewAppError(apperrors.ErrCodeDriveListing, "cannot access root folder", err)
	}
	return f.Name, nil
}

func (s *GoogleStore) ListEmployeeFolders(ctx context.Context) ([]Folder, error) {
	q := fmt.Sprintf("'%s' in parents and mimeType='application/vnd.google-apps.folder' and trashed=false", s.rootFolderID)
	list, err := s.drive.Files.List().Q(q).Fields("files(id, name)").PageSize(100).Context(ctx).Do()
	if err != nil {
		return nil, apperrors.NewAppError(apperrors.ErrCodeDriveListing, "cannot list employee folders", err)
	}

	folders := make([]Folder, 0, len(list.Files))
	for _, f := range list.Files {
		handle := strings.TrimSpace(strings.TrimPrefix(f.Name, folderHandlePrefix))
		if handle == "" {
			continue
		}
		folders = append(folders, Folder{ID: f.Id, Handle: handle})
	}
	return folders, nil
}

func (s *GoogleStore) FindSpreadsheet(ctx context.Context, folderID string) (string, error) {
	q := fmt.Sprintf("'%s' in parents and mimeType='application/vnd.google-apps.spreadsheet' and trashed=false", folderID)
	list, err := s.drive.Files.List().Q(q).Fields("files(id, name)").PageSize(10).Context(ctx).Do()
	if err != nil {
		return "", apperrors.NewAppError(apperrors.ErrCodeDriveListing, "cannot list folder contents", err)
	}
	if len(list.Files) == 0 {
		return "", apperrors.NewAppError(apperrors.ErrCodeSpreadsheetNotFound, "no spreadsheet in folder", nil)
	}
	return list.Files[0].Id, nil
}

func (s *GoogleStore) ListSheetTitles(ctx context.Context, spreadsheetID string) ([]string, error) {
	ss, err := s.sheets.Spreadsheets.Get(spreadsheetID).Fields("sheets.properties.title").Context(ctx).Do()
	if err != nil {
		return nil, apperrors.NewAppError(apperrors.ErrCodeDriveListing, "cannot read spreadsheet tabs", err)
	}

	titles := make([]string, 0, len(ss.Sheets))
	for _, sh := range ss.Sheets {
		if sh.Properties != nil {
			titles = append(titles, sh.Properties.Title)
		}
	}
	return titles, nil
}

// ReadRows reads up to maxRows data rows of columns A..D, starting after
// the header row.
func (s *GoogleStore) ReadRows(ctx context.Context, spreadsheetID, sheetTitle string, maxRows int) ([][]interface{}, error) {
	rng := fmt.Sprintf("'%s'!A2:D%d", sheetTitle, maxRows+1)
	resp, err := s.sheets.Spreadsheets.Values.Get(spreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		return nil, apperrors.NewAppError(apperrors.ErrCodeDriveListing, "cannot read sheet rows", err)
	}
	return resp.Values, nil
}
