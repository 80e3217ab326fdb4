package history

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/dtnitsch/url-metadata-extractor/models"
	dbpkg "github.com/dtnitsch/url-metadata-extractor/pkg/db"
	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"
)

func openDB(c *cli.Context) (*dbpkg.DB, error) {
	path := c.String("db")
	if path == "" {
		cfg, err := models.LoadConfig(c.String("config"))
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		path = cfg.History.DBPath
	}
	database, err := dbpkg.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return database, nil
}

// HistoryAction lists recent extractions.
func HistoryAction(c *cli.Context) error {
	database, err := openDB(c)
	if err != nil {
		return err
	}
	defer database.Close()

	rows, err := database.ListExtractions(c.Int("limit"))
	if err != nil {
		return fmt.Errorf("failed to list extractions: %w", err)
	}

	w := c.App.Writer
	if len(rows) == 0 {
		fmt.Fprintln(w, "No extractions found")
		return nil
	}

	fmt.Fprintf(w, "%-6s %-20s %-30s %-15s %s\n", "ID", "Created", "Business", "Industry", "URL")
	fmt.Fprintln(w, strings.Repeat("-", 110))
	for _, e := range rows {
		fmt.Fprintf(w, "%-6d %-20s %-30s %-15s %s\n",
			e.ID,
			e.CreatedAt.Format("2006-01-02 15:04:05"),
			truncate(orDash(e.BusinessName), 30),
			orDash(e.Industry),
			e.RequestedURL,
		)
	}

	fmt.Fprintf(w, "\nTotal: %d extractions\n", len(rows))
	fmt.Fprintf(w, "\nTip: Use 'url-metadata history show <id>' to see the full record\n")
	return nil
}

// ShowAction prints one stored record as YAML.
func ShowAction(c *cli.Context) error {
	if c.NArg() == 0 {
		return cli.Exit("Error: extraction ID required", 1)
	}
	id, err := strconv.ParseInt(c.Args().First(), 10, 64)
	if err != nil {
		return cli.Exit(fmt.Sprintf("invalid extraction ID: %s", c.Args().First()), 1)
	}

	database, err := openDB(c)
	if err != nil {
		return err
	}
	defer database.Close()

	e, err := database.GetExtraction(id)
	if errors.Is(err, dbpkg.ErrNotFound) {
		return cli.Exit(err.Error(), 1)
	}
	if err != nil {
		return err
	}

	enc := yaml.NewEncoder(c.App.Writer)
	enc.SetIndent(2)
	defer enc.Close()
	return enc.Encode(e)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
