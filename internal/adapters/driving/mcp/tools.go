package mcp

import (
	"context"
	"errors"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/jordyarms/everyday/internal/core/domain"
)

// noFrontMatterMessage is reported when a Markdown folder has nothing to collect.
const noFrontMatterMessage = "No valid YAML front matter found in Markdown files."

// ConvertInput is the input schema for the CSV to JSON tool.
type ConvertInput struct {
	InputCSV   string `json:"input_csv" jsonschema:"path of the CSV file to read"`
	OutputJSON string `json:"output_json" jsonschema:"path of the JSON file to write"`
}

// JSONToCSVInput is the input schema for the JSON to CSV tool.
type JSONToCSVInput struct {
	InputJSON string `json:"input_json" jsonschema:"path of the JSON file to read"`
	OutputCSV string `json:"output_csv" jsonschema:"path of the CSV file to write"`
}

// CSVToMarkdownInput is the input schema for the CSV to Markdown tool.
type CSVToMarkdownInput struct {
	InputCSV     string `json:"input_csv" jsonschema:"path of the CSV file to read"`
	OutputFolder string `json:"output_folder" jsonschema:"folder to write one Markdown file per row into"`
}

// MarkdownToCSVInput is the input schema for the Markdown to CSV tool.
type MarkdownToCSVInput struct {
	MarkdownFolder string `json:"markdown_folder" jsonschema:"folder containing Markdown files with YAML front matter"`
	OutputCSV      string `json:"output_csv" jsonschema:"path of the CSV file to write"`
}

// ConvertOutput is the output schema shared by the conversion tools.
type ConvertOutput struct {
	Rows    int      `json:"rows"`
	Files   []string `json:"files,omitempty"`
	Skipped []string `json:"skipped,omitempty"`
	Message string   `json:"message,omitempty"`
}

// HashRowsInput is the input schema for the row hasher tool.
type HashRowsInput struct {
	InputFile  string `json:"input_file" jsonschema:"path of the delimited file to read"`
	OutputFile string `json:"output_file" jsonschema:"path of the file to write"`
	Delimiter  string `json:"delimiter,omitempty" jsonschema:"cell delimiter: ',' (default) or 'tab'"`
	ColumnName string `json:"column_name,omitempty" jsonschema:"name of the appended hash column (default row_id)"`
}

// DownloadImagesInput is the input schema for the image download tool.
type DownloadImagesInput struct {
	CSVFile      string `json:"csv_file" jsonschema:"CSV file with title and image_url columns"`
	OutputFolder string `json:"output_folder" jsonschema:"folder to save images into"`
}

// DownloadImagesOutput is the output schema for the image download tool.
type DownloadImagesOutput struct {
	Downloaded int      `json:"downloaded"`
	Skipped    int      `json:"skipped"`
	Failed     int      `json:"failed"`
	Bytes      int64    `json:"bytes"`
	Failures   []string `json:"failures,omitempty"`
}

// ScrapeMetadataInput is the input schema for the metadata scraper tool.
type ScrapeMetadataInput struct {
	InputCSV  string `json:"input_csv" jsonschema:"CSV file with a url column"`
	OutputCSV string `json:"output_csv" jsonschema:"path of the metadata CSV to write"`
}

// ScrapeMetadataOutput is the output schema for the metadata scraper tool.
type ScrapeMetadataOutput struct {
	Pages  int      `json:"pages"`
	Failed int      `json:"failed"`
	Errors []string `json:"errors,omitempty"`
}

// GenerateQRInput is the input schema for the QR code tool.
type GenerateQRInput struct {
	Data       string `json:"data" jsonschema:"text or URL to encode"`
	OutputFile string `json:"output_file" jsonschema:"image path; .svg writes SVG, anything else PNG"`
}

// GenerateQROutput is the output schema for the QR code tool.
type GenerateQROutput struct {
	Format     string `json:"format"`
	Recovery   string `json:"recovery"`
	OutputFile string `json:"output_file"`
}

// registerTools registers all tool handlers with the MCP server.
// Tools whose port is missing are not offered.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "csv_to_json",
		Description: "Convert a CSV file to a JSON array of objects with typed columns",
	}, s.handleCSVToJSON)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "json_to_csv",
		Description: "Convert a JSON list of objects to CSV",
	}, s.handleJSONToCSV)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "csv_to_markdown",
		Description: "Write one Markdown file with YAML front matter per CSV row",
	}, s.handleCSVToMarkdown)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "markdown_to_csv",
		Description: "Collect the YAML front matter of a folder of Markdown files into a CSV",
	}, s.handleMarkdownToCSV)

	if s.ports.Hash != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "hash_rows",
			Description: "Append an MD5 hash of every row to a CSV or TSV file",
		}, s.handleHashRows)
	}

	if s.ports.Download != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "download_images",
			Description: "Download the images listed in a CSV file with title and image_url columns",
		}, s.handleDownloadImages)
	}

	if s.ports.Scrape != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "scrape_metadata",
			Description: "Extract title, description, Open Graph and JSON-LD metadata for a CSV of URLs",
		}, s.handleScrapeMetadata)
	}

	if s.ports.QR != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "generate_qr_code",
			Description: "Generate a QR code image as PNG or SVG",
		}, s.handleGenerateQR)
	}
}

// track runs fn as a recorded run when history is available.
func (s *Server) track(ctx context.Context, script, input, output string, fn func(run *domain.Run) error) error {
	run := domain.Run{Script: script, Input: input, Output: output}
	if s.ports.History == nil {
		return fn(&run)
	}
	return s.ports.History.Track(ctx, run, fn)
}

// handleCSVToJSON handles the csv_to_json tool invocation.
func (s *Server) handleCSVToJSON(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ConvertInput,
) (*mcp.CallToolResult, ConvertOutput, error) {
	var output ConvertOutput
	err := s.track(ctx, domain.ScriptCSVToJSON, input.InputCSV, input.OutputJSON, func(run *domain.Run) error {
		result, err := s.ports.Convert.CSVToJSON(ctx, input.InputCSV, input.OutputJSON)
		if err != nil {
			return err
		}
		run.Items = result.Rows
		output.Rows = result.Rows
		return nil
	})
	if err != nil {
		return nil, ConvertOutput{}, err
	}
	return nil, output, nil
}

// handleJSONToCSV handles the json_to_csv tool invocation.
func (s *Server) handleJSONToCSV(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input JSONToCSVInput,
) (*mcp.CallToolResult, ConvertOutput, error) {
	var output ConvertOutput
	err := s.track(ctx, domain.ScriptJSONToCSV, input.InputJSON, input.OutputCSV, func(run *domain.Run) error {
		result, err := s.ports.Convert.JSONToCSV(ctx, input.InputJSON, input.OutputCSV)
		if err != nil {
			return err
		}
		run.Items = result.Rows
		output.Rows = result.Rows
		return nil
	})
	if err != nil {
		return nil, ConvertOutput{}, err
	}
	return nil, output, nil
}

// handleCSVToMarkdown handles the csv_to_markdown tool invocation.
func (s *Server) handleCSVToMarkdown(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input CSVToMarkdownInput,
) (*mcp.CallToolResult, ConvertOutput, error) {
	var output ConvertOutput
	err := s.track(ctx, domain.ScriptCSVToMarkdown, input.InputCSV, input.OutputFolder, func(run *domain.Run) error {
		result, err := s.ports.Convert.CSVToMarkdown(ctx, input.InputCSV, input.OutputFolder)
		if err != nil {
			return err
		}
		run.Items = result.Rows
		output.Rows = result.Rows
		output.Files = result.Files
		return nil
	})
	if err != nil {
		return nil, ConvertOutput{}, err
	}
	return nil, output, nil
}

// handleMarkdownToCSV handles the markdown_to_csv tool invocation.
// A folder without front matter is reported in the message, not as an error.
func (s *Server) handleMarkdownToCSV(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input MarkdownToCSVInput,
) (*mcp.CallToolResult, ConvertOutput, error) {
	var output ConvertOutput
	err := s.track(ctx, domain.ScriptMarkdownToCSV, input.MarkdownFolder, input.OutputCSV, func(run *domain.Run) error {
		result, err := s.ports.Convert.MarkdownToCSV(ctx, input.MarkdownFolder, input.OutputCSV)
		if result != nil {
			output.Skipped = result.Skipped
			run.Failures = len(result.Skipped)
		}
		if errors.Is(err, domain.ErrNoFrontMatter) {
			output.Message = noFrontMatterMessage
			return nil
		}
		if err != nil {
			return err
		}
		run.Items = result.Rows
		output.Rows = result.Rows
		return nil
	})
	if err != nil {
		return nil, ConvertOutput{}, err
	}
	return nil, output, nil
}

// handleHashRows handles the hash_rows tool invocation.
func (s *Server) handleHashRows(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input HashRowsInput,
) (*mcp.CallToolResult, ConvertOutput, error) {
	delimiter, err := domain.ParseDelimiter(input.Delimiter)
	if err != nil {
		return nil, ConvertOutput{}, err
	}
	opts := domain.HashOptions{Delimiter: delimiter, ColumnName: input.ColumnName}

	var output ConvertOutput
	err = s.track(ctx, domain.ScriptHashRows, input.InputFile, input.OutputFile, func(run *domain.Run) error {
		result, err := s.ports.Hash.HashRows(ctx, input.InputFile, input.OutputFile, opts)
		if err != nil {
			return err
		}
		run.Items = result.Rows
		output.Rows = result.Rows
		return nil
	})
	if err != nil {
		return nil, ConvertOutput{}, err
	}
	return nil, output, nil
}

// handleDownloadImages handles the download_images tool invocation.
func (s *Server) handleDownloadImages(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input DownloadImagesInput,
) (*mcp.CallToolResult, DownloadImagesOutput, error) {
	var output DownloadImagesOutput
	err := s.track(ctx, domain.ScriptDownloadImages, input.CSVFile, input.OutputFolder, func(run *domain.Run) error {
		results, err := s.ports.Download.DownloadImages(ctx, input.CSVFile, input.OutputFolder, nil)
		if err != nil {
			return err
		}
		summary := domain.Summarise(results)
		output.Downloaded = summary.Downloaded
		output.Skipped = summary.Skipped
		output.Failed = summary.Failed
		output.Bytes = summary.Bytes
		for i := range results {
			if results[i].Status == domain.ImageFailed {
				output.Failures = append(output.Failures,
					fmt.Sprintf("row %d (%s): %v", results[i].Job.Line, results[i].Job.URL, results[i].Err))
			}
		}
		run.Items = summary.Downloaded
		run.Failures = summary.Failed
		return nil
	})
	if err != nil {
		return nil, DownloadImagesOutput{}, err
	}
	return nil, output, nil
}

// handleScrapeMetadata handles the scrape_metadata tool invocation.
func (s *Server) handleScrapeMetadata(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ScrapeMetadataInput,
) (*mcp.CallToolResult, ScrapeMetadataOutput, error) {
	var output ScrapeMetadataOutput
	err := s.track(ctx, domain.ScriptScrapeMeta, input.InputCSV, input.OutputCSV, func(run *domain.Run) error {
		pages, err := s.ports.Scrape.ScrapeMetadata(ctx, input.InputCSV, input.OutputCSV, nil)
		if err != nil {
			return err
		}
		output.Pages = len(pages)
		for i := range pages {
			if pages[i].Failed() {
				output.Failed++
				output.Errors = append(output.Errors, pages[i].URL+": "+pages[i].Error)
			}
		}
		run.Items = output.Pages
		run.Failures = output.Failed
		return nil
	})
	if err != nil {
		return nil, ScrapeMetadataOutput{}, err
	}
	return nil, output, nil
}

// handleGenerateQR handles the generate_qr_code tool invocation.
func (s *Server) handleGenerateQR(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input GenerateQRInput,
) (*mcp.CallToolResult, GenerateQROutput, error) {
	var output GenerateQROutput
	err := s.track(ctx, domain.ScriptQR, input.Data, input.OutputFile, func(run *domain.Run) error {
		opts, err := s.ports.QR.Generate(ctx, input.Data, input.OutputFile)
		if err != nil {
			return err
		}
		run.Items = 1
		output = GenerateQROutput{
			Format:     string(opts.Format),
			Recovery:   string(opts.Recovery),
			OutputFile: input.OutputFile,
		}
		return nil
	})
	if err != nil {
		return nil, GenerateQROutput{}, err
	}
	return nil, output, nil
}
