package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lodestone-launcher/lodestone/internal/flame"
)

var (
	modType     string
	modLoaders  []string
	gameVersion string
	sortField   string
	page        int
)

func newModsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mods",
		Short: "Browse the mod catalog",
	}

	cmd.AddCommand(newModsSearchCmd())
	cmd.AddCommand(newModsInfoCmd())
	cmd.AddCommand(newModsDescriptionCmd())
	cmd.AddCommand(newModsVersionsCmd())
	cmd.AddCommand(newModsDepsCmd())
	cmd.AddCommand(newModsFileCmd())
	cmd.AddCommand(newModsFilesCmd())
	cmd.AddCommand(newModsChangelogCmd())

	return cmd
}

// parseLoaders maps the --loader flag values.
func parseLoaders(names []string) ([]flame.Loader, error) {
	var loaders []flame.Loader
	for _, name := range names {
		l, err := flame.ParseLoader(name)
		if err != nil {
			return nil, err
		}
		loaders = append(loaders, l)
	}
	return loaders, nil
}

// searchView is the display shape of one search hit.
type searchView struct {
	ID        int    `json:"id" yaml:"id"`
	Name      string `json:"name" yaml:"name"`
	Slug      string `json:"slug" yaml:"slug"`
	Summary   string `json:"summary" yaml:"summary"`
	Downloads int64  `json:"downloads" yaml:"downloads"`
}

// searchResultsView is the display shape of one search page.
type searchResultsView struct {
	Total int          `json:"total" yaml:"total"`
	Page  int          `json:"page" yaml:"page"`
	Mods  []searchView `json:"mods" yaml:"mods"`
}

func (v searchResultsView) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d results (page %d)\n", v.Total, v.Page)
	for _, m := range v.Mods {
		fmt.Fprintf(&b, "  %8d  %-40s %s\n", m.ID, m.Name, m.Summary)
	}
	return strings.TrimRight(b.String(), "\n")
}

func newModsSearchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search [text]",
		Short: "Search the catalog",
		Long: `Search queries the catalog, filtered by resource type, mod loader, game
version and sort field.

Examples:
  lodestone mods search sodium --loader fabric --game-version 1.21
  lodestone mods search --type resourcepack --sort popularity maps`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			writer, err := newOutputWriter()
			if err != nil {
				return err
			}

			resType, err := flame.ParseResourceType(modType)
			if err != nil {
				return err
			}
			loaders, err := parseLoaders(modLoaders)
			if err != nil {
				return err
			}

			searchArgs := flame.SearchArgs{
				Type:        resType,
				Offset:      page * 25,
				Loaders:     loaders,
				GameVersion: gameVersion,
			}
			if len(args) == 1 {
				searchArgs.Search = args[0]
			}
			if sortField != "" {
				method, err := flame.SortingMethodByName(sortField)
				if err != nil {
					return err
				}
				searchArgs.Sort = &method
			}

			results, err := newFlameClient(cfg).Search(cmd.Context(), searchArgs)
			if err != nil {
				return fmt.Errorf("search failed: %w", err)
			}

			view := searchResultsView{
				Total: results.Pagination.TotalCount,
				Page:  page,
			}
			for _, m := range results.Mods {
				view.Mods = append(view.Mods, searchView{
					ID:        m.ID,
					Name:      m.Name,
					Slug:      m.Slug,
					Summary:   m.Summary,
					Downloads: int64(m.DownloadCount),
				})
			}
			return writer.Write(view)
		},
	}

	cmd.Flags().StringVar(&modType, "type", "mod", "Resource type: mod, resourcepack")
	cmd.Flags().StringSliceVar(&modLoaders, "loader", nil, "Mod loader filter: forge, fabric, quilt, neoforge")
	cmd.Flags().StringVar(&gameVersion, "game-version", "", "Game version filter")
	cmd.Flags().StringVar(&sortField, "sort", "", "Sort field: featured, popularity, lastupdated, name, author, totaldownloads, category, gameversion")
	cmd.Flags().IntVar(&page, "page", 0, "Result page (25 per page)")

	return cmd
}

// modView is the display shape of a single entry.
type modView struct {
	ID        int    `json:"id" yaml:"id"`
	Name      string `json:"name" yaml:"name"`
	Slug      string `json:"slug" yaml:"slug"`
	Summary   string `json:"summary" yaml:"summary"`
	Downloads int64  `json:"downloads" yaml:"downloads"`
	Modified  string `json:"modified,omitempty" yaml:"modified,omitempty"`
}

func (v modView) String() string {
	return fmt.Sprintf("%s (#%d, %s)\n%s\nDownloads: %d  Last modified: %s",
		v.Name, v.ID, v.Slug, v.Summary, v.Downloads, v.Modified)
}

func newModsInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info <id>",
		Short: "Show one catalog entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			writer, err := newOutputWriter()
			if err != nil {
				return err
			}

			mod, err := newFlameClient(cfg).Mod(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("lookup failed: %w", err)
			}

			return writer.Write(modView{
				ID:        mod.ID,
				Name:      mod.Name,
				Slug:      mod.Slug,
				Summary:   mod.Summary,
				Downloads: int64(mod.DownloadCount),
				Modified:  mod.DateModified.Format("2006-01-02"),
			})
		},
	}
}

// fileView is the display shape of one downloadable file.
type fileView struct {
	ID           int      `json:"id" yaml:"id"`
	DisplayName  string   `json:"display_name" yaml:"display_name"`
	FileName     string   `json:"file_name" yaml:"file_name"`
	Released     string   `json:"released,omitempty" yaml:"released,omitempty"`
	GameVersions []string `json:"game_versions,omitempty" yaml:"game_versions,omitempty"`
}

func (v fileView) String() string {
	return fmt.Sprintf("%10d  %-44s %s  %s", v.ID, v.DisplayName, v.Released, strings.Join(v.GameVersions, ","))
}

// filesView is a listing of downloadable files.
type filesView []fileView

func (v filesView) String() string {
	lines := make([]string, 0, len(v))
	for _, f := range v {
		lines = append(lines, f.String())
	}
	return strings.Join(lines, "\n")
}

func filesToView(files []flame.File) filesView {
	view := make(filesView, 0, len(files))
	for _, f := range files {
		view = append(view, fileView{
			ID:           f.ID,
			DisplayName:  f.DisplayName,
			FileName:     f.FileName,
			Released:     f.FileDate.Format("2006-01-02"),
			GameVersions: f.GameVersions,
		})
	}
	return view
}

func newModsVersionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "versions <id>",
		Short: "List the files of one catalog entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			writer, err := newOutputWriter()
			if err != nil {
				return err
			}

			files, err := newFlameClient(cfg).Versions(cmd.Context(), args[0], gameVersion)
			if err != nil {
				return fmt.Errorf("version listing failed: %w", err)
			}
			return writer.Write(filesToView(files))
		},
	}

	cmd.Flags().StringVar(&gameVersion, "game-version", "", "Game version filter")

	return cmd
}

func newModsDepsCmd() *cobra.Command {
	var loaderNames []string

	cmd := &cobra.Command{
		Use:   "deps <id>",
		Short: "List dependency files for one entry, pinned to a loader set",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			writer, err := newOutputWriter()
			if err != nil {
				return err
			}

			loaders, err := parseLoaders(loaderNames)
			if err != nil {
				return err
			}
			if !flame.ValidLoaders(loaders) {
				return fmt.Errorf("at least one of forge, fabric, quilt, neoforge is required")
			}

			files, err := newFlameClient(cfg).DependencyVersions(cmd.Context(), args[0], gameVersion, loaders)
			if err != nil {
				return fmt.Errorf("dependency listing failed: %w", err)
			}
			return writer.Write(filesToView(files))
		},
	}

	cmd.Flags().StringSliceVar(&loaderNames, "loader", nil, "Mod loader(s): forge, fabric, quilt, neoforge")
	cmd.Flags().StringVar(&gameVersion, "game-version", "", "Game version filter")
	_ = cmd.MarkFlagRequired("loader")

	return cmd
}

func newModsFileCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "file <mod-id> <file-id>",
		Short: "Show one file of one catalog entry",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			writer, err := newOutputWriter()
			if err != nil {
				return err
			}

			file, err := newFlameClient(cfg).File(cmd.Context(), args[0], args[1])
			if err != nil {
				return fmt.Errorf("file lookup failed: %w", err)
			}
			return writer.Write(filesToView([]flame.File{*file})[0])
		},
	}
}

func newModsFilesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "files <file-id> [file-id...]",
		Short: "Look up files across entries in one request",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			writer, err := newOutputWriter()
			if err != nil {
				return err
			}

			fileIDs := make([]int, 0, len(args))
			for _, arg := range args {
				id, err := parseID(arg, "file")
				if err != nil {
					return err
				}
				fileIDs = append(fileIDs, id)
			}

			files, err := newFlameClient(cfg).Files(cmd.Context(), fileIDs)
			if err != nil {
				return fmt.Errorf("file lookup failed: %w", err)
			}
			return writer.Write(filesToView(files))
		},
	}
}

func newModsChangelogCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "changelog <mod-id> <file-id>",
		Short: "Show the changelog of one file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			modID, err := parseID(args[0], "mod")
			if err != nil {
				return err
			}
			fileID, err := parseID(args[1], "file")
			if err != nil {
				return err
			}

			changelog, err := newFlameClient(cfg).Changelog(cmd.Context(), modID, fileID)
			if err != nil {
				return fmt.Errorf("changelog lookup failed: %w", err)
			}
			fmt.Println(changelog)
			return nil
		},
	}
}

func newModsDescriptionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "description <mod-id>",
		Short: "Show the long description of one catalog entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			modID, err := parseID(args[0], "mod")
			if err != nil {
				return err
			}

			description, err := newFlameClient(cfg).Description(cmd.Context(), modID)
			if err != nil {
				return fmt.Errorf("description lookup failed: %w", err)
			}
			fmt.Println(description)
			return nil
		},
	}
}

// parseID parses a numeric catalog id from a CLI argument.
func parseID(arg, what string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil || id < 0 {
		return 0, fmt.Errorf("invalid %s id: %s", what, arg)
	}
	return id, nil
}
