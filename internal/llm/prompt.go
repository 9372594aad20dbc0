package llm

import (
	"os"
	"path/filepath"
	"strings"
)

// Placeholders recognized in prompt template files.
const (
	textPlaceholder         = "{text}"
	instructionsPlaceholder = "{format_instructions}"
)

// BuildPrompt renders the extraction prompt for a document. When a template
// named by req.Configuration exists under promptDir it is used with the
// {text} and {format_instructions} placeholders substituted; otherwise a
// plain fallback prompt is emitted.
func BuildPrompt(req ExtractRequest, promptDir string) string {
	if req.Configuration != "" && promptDir != "" {
		path := filepath.Join(promptDir, req.Configuration+".txt")
		if tmpl, err := os.ReadFile(path); err == nil {
			out := strings.ReplaceAll(string(tmpl), textPlaceholder, req.OCRText)
			return strings.ReplaceAll(out, instructionsPlaceholder, FormatInstructions())
		}
	}
	return "Please process the following text, fix spelling errors, and parse to json: " + req.OCRText
}

// FormatInstructions describes the five output fields and the strict
// formatting rules the model must follow. The reply must be a fenced JSON
// block so the parser can lift it out of any surrounding prose.
func FormatInstructions() string {
	parts := []string{
		"The output should be a markdown code snippet formatted in the following schema, " +
			"including the leading and trailing \"```json\" and \"```\":",
		"```json\n{\n" +
			"\t\"Bill_Number\": string  // see rules below\n" +
			"\t\"Date\": string  // most prominent bill date, converted to mm/dd/yyyy\n" +
			"\t\"Time\": string  // 12-hour 'hh:mm AA' (e.g. '10:30 PM'); empty string if no time found\n" +
			"\t\"Bill_Amount\": float  // total amount as a NUMBER with 2 decimal places\n" +
			"\t\"Bill_Category\": string  // most specific category\n" +
			"}\n```",
		"STRICT PARSING RULES:",
		"1. Bill Number (NOT Order Number): look for the actual bill/invoice number near " +
			"\"Bill No\", \"Invoice No\" or \"Receipt No\" labels. Bill numbers are typically " +
			"longer (5+ characters) and often contain hyphens or alphanumeric combinations. " +
			"Distinguish from \"Order #\" numbers; when in doubt between multiple numbers, " +
			"choose the more complex one. " +
			"Example: in \"Order #12, Invoice #885896-ORGNL\", extract \"885896-ORGNL\".",
		"2. Bill Amount: must be a NUMBER (float), never a string, always with exactly 2 " +
			"decimal places (100 -> 100.00, 42.5 -> 42.50). Remove all currency symbols and " +
			"commas. If multiple amounts appear, choose the one labeled \"Total\" or " +
			"\"Grand Total\". \"Error\" is not a valid bill amount.",
		"3. Bill Category: one of Food, Travel (Auto/Bus/Cab), Fuel, Communication, " +
			"Printing & Stationery, Software License, Repairs & Maintenance, Staff Welfare, General.",
		"4. Formatting: PURE JSON output only. No explanatory text, no errors or " +
			"placeholders in values.",
	}
	return strings.Join(parts, "\n\n")
}
