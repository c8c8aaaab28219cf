package validators

import (
	"fmt"
	"path"
	"regexp"
	"strings"

	ofdvalidator "github.com/ofdb/validator"
	"github.com/ofdb/validator/imagemeta"
)

// CategoryLogo is the category for logo findings.
const CategoryLogo = "Logo"

// logoNameRe is the allowed set of logo filenames. Built at package init;
// no lazily-initialized globals.
var logoNameRe = regexp.MustCompile(`^logo\.(png|jpg|svg)$`)

// LogoBounds holds the allowed raster logo dimension range in pixels.
type LogoBounds struct {
	Min uint32
	Max uint32
}

// DefaultLogoBounds matches the catalog contribution guidelines.
var DefaultLogoBounds = LogoBounds{Min: 100, Max: 400}

// ValidateLogo checks a logo file held in memory: the declared name from
// the owning JSON document must be a bare filename, the actual filename
// must follow the logo naming convention, SVG files must have an <svg>
// root element, and raster files must be square within the dimension
// bounds. Empty content means the loader found the file missing on disk.
func ValidateLogo(content []byte, filename, declaredName, pathLabel string, bounds LogoBounds) *ofdvalidator.ValidationResult {
	result := ofdvalidator.NewResult()

	if declaredName != "" && strings.Contains(declaredName, "/") {
		result.AddError(CategoryLogo,
			fmt.Sprintf("Logo path '%s' contains '/' - only use filename", declaredName),
			path.Dir(pathLabel))
	}

	if len(content) == 0 {
		result.AddError(CategoryLogo, "Logo file not found", pathLabel)
		return result
	}

	if !logoNameRe.MatchString(filename) {
		result.AddError(CategoryLogo,
			fmt.Sprintf("Logo name '%s' must be 'logo.png', 'logo.jpg' or 'logo.svg'", filename),
			pathLabel)
	}

	if strings.HasSuffix(filename, ".svg") {
		if !isSVG(content) {
			result.AddError(CategoryLogo,
				"File has .svg extension but is not a valid SVG (root element is not <svg>)",
				pathLabel)
		}
		return result
	}

	width, height, err := imagemeta.Dimensions(content, filename)
	if err != nil {
		result.AddError(CategoryLogo, fmt.Sprintf("Failed to read image: %v", err), pathLabel)
		return result
	}

	if width != height {
		result.AddError(CategoryLogo,
			fmt.Sprintf("Logo must be square (width=%d, height=%d)", width, height),
			pathLabel)
	}
	if width < bounds.Min || height < bounds.Min {
		result.AddError(CategoryLogo,
			fmt.Sprintf("Logo dimensions too small (minimum %dx%d)", bounds.Min, bounds.Min),
			pathLabel)
	}
	if width > bounds.Max || height > bounds.Max {
		result.AddError(CategoryLogo,
			fmt.Sprintf("Logo dimensions too large (maximum %dx%d)", bounds.Max, bounds.Max),
			pathLabel)
	}

	return result
}

// isSVG reports whether content's root element is <svg>, tolerating an
// XML prolog, a DOCTYPE and leading comments.
func isSVG(content []byte) bool {
	s := strings.TrimSpace(string(content))

	if strings.HasPrefix(s, "<?xml") {
		if i := strings.Index(s, "?>"); i >= 0 {
			s = strings.TrimSpace(s[i+2:])
		}
	}

	if strings.HasPrefix(strings.ToLower(s), "<!doctype svg") {
		if i := strings.IndexByte(s, '>'); i >= 0 {
			s = strings.TrimSpace(s[i+1:])
		}
	}

	for strings.HasPrefix(s, "<!--") {
		i := strings.Index(s, "-->")
		if i < 0 {
			break
		}
		s = strings.TrimSpace(s[i+3:])
	}

	return strings.HasPrefix(strings.ToLower(s), "<svg")
}
