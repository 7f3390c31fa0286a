package main

import (
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/flanksource/commons/logger"
	"github.com/spf13/cobra"

	"github.com/labelforge/labelforge"
	"github.com/labelforge/labelforge/api"
	"github.com/labelforge/labelforge/barcode"
	"github.com/labelforge/labelforge/render"
	"github.com/labelforge/labelforge/script"
	"github.com/labelforge/labelforge/store"
)

// Build information (set by goreleaser)
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

var (
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
)

func main() {
	rootCmd := newRootCommand()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render(err.Error()))
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "labelforge",
		Short: "Design labels and compile them into print-control programs",
		Long: `Labelforge is the label design core behind the visual editor: it loads
label designs, validates them, renders previews, and compiles them into the
program the print runtime executes.`,
		Example: `  labelforge compile design.json -o label.php
  labelforge render design.json -o preview.png
  labelforge render design.json --pdf label.pdf
  labelforge templates list --server https://labels.example.com --customer 42`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			labelforge.Flags.UseFlags()
		},
	}

	labelforge.BindAllFlags(rootCmd.PersistentFlags())

	rootCmd.AddCommand(
		newCompileCommand(),
		newRenderCommand(),
		newBarcodeCommand(),
		newTemplatesCommand(),
		newFieldsCommand(),
		newFontsCommand(),
		newVersionCommand(),
	)
	return rootCmd
}

func newCompileCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "compile <design-file>",
		Short: "Compile a design into a print-control program",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			design, err := labelforge.LoadDesign(args[0])
			if err != nil {
				return err
			}

			program, err := script.Compile(design.Elements, design.Format)
			if err != nil {
				return err
			}

			if output == "" {
				fmt.Print(program)
				return nil
			}
			name := strings.TrimSuffix(output, ".php")
			if !labelforge.ValidExportName(name) {
				return fmt.Errorf("invalid export name %q", output)
			}
			if err := os.WriteFile(output, []byte(program), 0o644); err != nil {
				return fmt.Errorf("write %s: %w", output, err)
			}
			logger.Infof("compiled %s to %s", args[0], output)
			fmt.Println(successStyle.Render("wrote " + output))
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default: stdout)")
	return cmd
}

func newRenderCommand() *cobra.Command {
	var (
		output  string
		pdfPath string
		fontDir string
	)

	cmd := &cobra.Command{
		Use:   "render <design-file>",
		Short: "Render a design to a PNG preview or a PDF",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			design, err := labelforge.LoadDesign(args[0])
			if err != nil {
				return err
			}
			r := render.New(fontDir)

			if pdfPath != "" {
				if err := r.SavePDF(design, pdfPath); err != nil {
					return err
				}
				logger.Infof("rendered %s to %s", args[0], pdfPath)
				fmt.Println(successStyle.Render("wrote " + pdfPath))
				return nil
			}

			if output == "" {
				output = labelforge.DefaultExportName + ".png"
			}
			data, err := r.PNG(design)
			if err != nil {
				return err
			}
			if err := os.WriteFile(output, data, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", output, err)
			}
			logger.Infof("rendered %s to %s", args[0], output)
			fmt.Println(successStyle.Render("wrote " + output))
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "PNG output file")
	cmd.Flags().StringVar(&pdfPath, "pdf", "", "Render to PDF instead of PNG")
	cmd.Flags().StringVar(&fontDir, "fonts", "", "Directory containing TTF font files")
	return cmd
}

func newBarcodeCommand() *cobra.Command {
	var (
		typ    string
		output string
	)

	cmd := &cobra.Command{
		Use:   "barcode <value>",
		Short: "Encode a barcode value to a PNG symbol",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sym, err := barcode.Encode(barcode.Request{
				Type:  api.BarcodeType(strings.ToUpper(typ)),
				Value: args[0],
			})
			if err != nil {
				return err
			}
			url, err := sym.DataURL()
			if err != nil {
				return err
			}
			if output == "" {
				fmt.Println(url)
				return nil
			}
			data, err := sym.PNG()
			if err != nil {
				return err
			}
			if err := os.WriteFile(output, data, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", output, err)
			}
			fmt.Println(successStyle.Render("wrote " + output))
			return nil
		},
	}

	cmd.Flags().StringVarP(&typ, "type", "t", string(api.Code128), "Symbology: CODE128, CODE39, UPC, EAN8, EAN13, MSI, ITF14")
	cmd.Flags().StringVarP(&output, "output", "o", "", "PNG output file (default: print a data URL)")
	return cmd
}

func serviceClient() (*store.Client, error) {
	if labelforge.Flags.Server == "" {
		return nil, fmt.Errorf("--server is required")
	}
	if labelforge.Flags.Customer == "" {
		return nil, fmt.Errorf("--customer is required")
	}
	return store.NewClient(labelforge.Flags.Server, labelforge.Flags.Customer), nil
}

func newTemplatesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "templates",
		Short: "List and save label templates",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List the customer's templates",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := serviceClient()
			if err != nil {
				return err
			}
			cache, err := store.NewCache(labelforge.Flags.CacheConfig())
			if err != nil {
				return err
			}
			defer cache.Close()

			templates, err := client.Templates(cmd.Context())
			if err != nil {
				logger.Warnf("template service unreachable, using cache: %v", err)
				templates, err = cache.List(labelforge.Flags.Customer)
				if err != nil {
					return err
				}
			} else {
				for _, t := range templates {
					if err := cache.Put(labelforge.Flags.Customer, t); err != nil {
						logger.Warnf("failed to cache template %s: %v", t.Name, err)
					}
				}
			}

			for _, t := range templates {
				fmt.Printf("%s\t%dx%d %s\t%d elements\n",
					t.Name,
					int(t.Design.Format.RealWidth), int(t.Design.Format.RealHeight), t.Design.Format.Metric,
					len(t.Design.Elements))
			}
			return nil
		},
	}

	save := &cobra.Command{
		Use:   "save <name> <design-file>",
		Short: "Save a design as a named template",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := serviceClient()
			if err != nil {
				return err
			}
			design, err := labelforge.LoadDesign(args[1])
			if err != nil {
				return err
			}
			t := api.Template{Name: args[0], Design: design}
			if err := client.SaveTemplate(cmd.Context(), t); err != nil {
				return err
			}
			fmt.Println(successStyle.Render("saved template " + t.Name))
			return nil
		},
	}

	show := &cobra.Command{
		Use:   "show <name>",
		Short: "Write a template's design to a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cache, err := store.NewCache(labelforge.Flags.CacheConfig())
			if err != nil {
				return err
			}
			defer cache.Close()

			t, err := cache.Get(labelforge.Flags.Customer, args[0])
			if err != nil {
				return err
			}
			path := args[0] + ".json"
			if err := labelforge.SaveDesign(path, t.Design); err != nil {
				return err
			}
			fmt.Println(successStyle.Render("wrote " + path))
			return nil
		},
	}

	cmd.AddCommand(list, save, show)
	return cmd
}

func newFieldsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "fields",
		Short: "List the bindable data fields",
		RunE: func(cmd *cobra.Command, args []string) error {
			fields := labelforge.BuiltinFields
			if labelforge.Flags.Server != "" {
				client, err := serviceClient()
				if err != nil {
					return err
				}
				remote, err := client.Fields(cmd.Context())
				if err != nil {
					logger.Warnf("field service unreachable, using builtins: %v", err)
				} else if len(remote) > 0 {
					fields = remote
				}
			}
			for _, f := range fields {
				fmt.Println(f)
			}
			return nil
		},
	}
}

func newFontsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fonts",
		Short: "List and install print runtime fonts",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List available fonts",
		RunE: func(cmd *cobra.Command, args []string) error {
			fonts := labelforge.BuiltinFonts
			if labelforge.Flags.Server != "" {
				client, err := serviceClient()
				if err != nil {
					return err
				}
				remote, err := client.Fonts(cmd.Context())
				if err != nil {
					logger.Warnf("font service unreachable, using builtins: %v", err)
				} else if len(remote) > 0 {
					fonts = remote
				}
			}
			for _, f := range fonts {
				fmt.Printf("%s\t%s\n", f.Family, f.File)
			}
			return nil
		},
	}

	upload := &cobra.Command{
		Use:   "upload <family> <ttf-file>",
		Short: "Install a TTF on the print runtime",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := serviceClient()
			if err != nil {
				return err
			}
			data, err := os.ReadFile(args[1])
			if err != nil {
				return fmt.Errorf("read %s: %w", args[1], err)
			}
			if err := client.UploadFont(cmd.Context(), args[0], args[1], data); err != nil {
				return err
			}
			fmt.Println(successStyle.Render("installed " + args[0]))
			return nil
		},
	}

	cmd.AddCommand(list, upload)
	return cmd
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("labelforge %s (commit %s, built %s, %s)\n", version, commit, date, runtime.Version())
		},
	}
}
