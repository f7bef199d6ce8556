package rules

import "github.com/hakim/surfwatch/internal/models"

// URLCategory is one rule row for classifying historical URLs: a URL
// belongs to the category when its file extension matches one of
// Extensions or any keyword appears in its path or query.
type URLCategory struct {
	Name       string
	Extensions []string
	Keywords   []string
	Priority   models.Priority
}

// URLCategories is the classification table for historical URLs.
// Evaluated in declaration order; a URL may match any number of rows.
var URLCategories = []URLCategory{
	{
		Name: "backup",
		Extensions: []string{".bak", ".backup", ".old", ".orig", ".save", ".swp", ".tmp",
			".~", ".copy", ".db.bak", ".sql.bak", ".tar.gz", ".zip", ".rar"},
		Keywords: []string{"backup", "old", "copy", "archive", "dump"},
		Priority: models.PriorityHigh,
	},
	{
		Name: "database",
		Extensions: []string{".sql", ".db", ".sqlite", ".sqlite3", ".mdb", ".accdb",
			".pdb", ".dbf", ".dump"},
		Keywords: []string{"database", "dump", "export", "mysql", "postgres", "mongodb"},
		Priority: models.PriorityHigh,
	},
	{
		Name: "config",
		Extensions: []string{".conf", ".config", ".cfg", ".ini", ".env", ".yml", ".yaml",
			".properties", ".xml", ".json", ".toml"},
		Keywords: []string{"config", "configuration", "settings", "env", "environment"},
		Priority: models.PriorityHigh,
	},
	{
		Name: "source_code",
		Extensions: []string{".php", ".asp", ".aspx", ".jsp", ".java", ".py", ".rb",
			".pl", ".cgi", ".sh", ".bat", ".ps1"},
		Keywords: []string{"source", "src", "code"},
		Priority: models.PriorityMedium,
	},
	{
		Name: "documents",
		Extensions: []string{".pdf", ".doc", ".docx", ".xls", ".xlsx", ".ppt", ".pptx",
			".odt", ".ods", ".odp", ".rtf", ".txt", ".csv"},
		Keywords: []string{"document", "report", "spreadsheet", "presentation"},
		Priority: models.PriorityMedium,
	},
	{
		Name: "credentials",
		Extensions: []string{".key", ".pem", ".p12", ".pfx", ".jks", ".keystore",
			".crt", ".cer", ".der"},
		Keywords: []string{"password", "passwd", "pwd", "credential", "secret",
			"key", "token", "auth", "certificate", "private"},
		Priority: models.PriorityCritical,
	},
	{
		Name:       "logs",
		Extensions: []string{".log", ".logs", ".out", ".err", ".trace"},
		Keywords:   []string{"log", "logs", "error", "debug", "trace"},
		Priority:   models.PriorityMedium,
	},
	{
		Name:       "api_docs",
		Extensions: []string{".wsdl", ".wadl", ".raml", ".swagger", ".openapi"},
		Keywords:   []string{"api", "swagger", "openapi", "graphql", "rest", "soap"},
		Priority:   models.PriorityHigh,
	},
	{
		Name:       "version_control",
		Extensions: []string{".git", ".svn", ".hg", ".bzr"},
		Keywords:   []string{"git", "svn", "mercurial", "bazaar", ".git/config"},
		Priority:   models.PriorityCritical,
	},
	{
		Name:       "sensitive",
		Extensions: []string{},
		Keywords: []string{"admin", "dashboard", "panel", "console", "cpanel",
			"phpmyadmin", "upload", "backup", "test", "dev", "staging"},
		Priority: models.PriorityHigh,
	},
}

// InterestingParams is the watchlist of query parameter names worth
// surfacing on classified URLs. Matching is case-insensitive and exact.
var InterestingParams = []string{
	"id", "user", "username", "email", "file", "path", "url", "redirect",
	"next", "return", "callback", "debug", "admin", "token", "api_key",
	"key", "secret", "password", "query", "search", "q", "page", "redirect_uri",
}
