package parse

import (
	"regexp"
	"strings"

	"github.com/SuperShot3/order-form/internal/domain"
)

// LocalExtractor is the deterministic, rule-based extraction path. For each
// field it attempts an ordered list of label-anchored and context-free
// patterns against the raw text; the first successful pattern wins. It never
// returns an error: a field no pattern matched is simply absent.
type LocalExtractor struct {
	districts []string
}

// NewLocalExtractor creates an extractor scanning the given district list.
// A nil or empty list falls back to the built-in districts.
func NewLocalExtractor(districts []string) *LocalExtractor {
	if len(districts) == 0 {
		districts = domain.DefaultDistricts
	}
	return &LocalExtractor{districts: districts}
}

// Label-anchored and fallback patterns. Lines may carry emoji markers in
// front of the label, hence the non-word prefix on anchored patterns.
var (
	reItemLine = regexp.MustCompile(`(?mi)^[^\w\n]*([^\n—–:]+?)\s*[—–]\s*(XL|[SML])\s*[—–]\s*([\d,]+(?:\.\d+)?)\s*(?:THB|฿)?\s*$`)

	reBouquetLabeled = regexp.MustCompile(`(?mi)^[^\w\n]*bouquet(?:\s*name)?\s*:\s*["']?([^"'\n—–]+?)["']?(?:\s*[—–-]+\s*(XL|[SML])\b(?:\s*size)?)?\s*$`)

	reSizeLabeled = regexp.MustCompile(`(?mi)^[^\w\n]*size\s*:\s*(XL|[SML])\b`)

	reCardQuoted   = regexp.MustCompile(`(?i)card\s*(?:message|text)\s*:?\s*(?:"([^"]+)"|“([^”]+)”|'([^']+)'|‘([^’]+)’)`)
	reCardUnquoted = regexp.MustCompile(`(?mi)^[^\w\n]*card\s*(?:message|text)\s*:\s*(.+?)\s*$`)

	dateToken     = `\d{1,2}[/-]\d{1,2}[/-]\d{2,4}|\d{4}[/-]\d{1,2}[/-]\d{1,2}|[A-Za-z]{3,9}\.?\s+\d{1,2},?\s+\d{4}|\d{1,2}\s+[A-Za-z]{3,9}\.?,?\s+\d{4}`
	reDateLabeled = regexp.MustCompile(`(?i)delivery\s*date\s*:?\s*(` + dateToken + `)`)
	reDateBare    = regexp.MustCompile(`(\d{1,2}[/-]\d{1,2}[/-]\d{2,4})`)

	reTimeLabeled  = regexp.MustCompile(`(?mi)^[^\w\n]*(?:delivery\s*time|time\s*window)\s*:\s*(.+?)\s*$`)
	reTimeStandard = regexp.MustCompile(`(?i)\bstandard\b|during the day`)
	reTimeBare     = regexp.MustCompile(`(\d{1,2}:\d{2}\s*[-–—]\s*\d{1,2}:\d{2})`)

	reAddrLabel      = regexp.MustCompile(`(?i)^[^\w\n]*(?:delivery\s*address|full\s*address|address)\s*:?\s*(.*)$`)
	reAddrSingleLine = regexp.MustCompile(`(?mi)^[^\w\n]*(?:delivery\s*address|full\s*address|address)\s*:\s*(.+?)(?:\s*Google\s*Maps.*)?$`)
	reMapsTerminator = regexp.MustCompile(`(?i)google\s*maps|maps\.app\.goo\.gl|google\.[a-z.]+/maps`)
	reAnyLabel       = regexp.MustCompile(`(?i)^[^\w\n]*(?:recipient|sender|customer|phone|preferred|card|bouquet|size|items|total|delivery\s*(?:date|time|fee)|order|image|photo|notes)\b[^\n]*:`)

	reMapsShort = regexp.MustCompile(`(?i)(https?://\S*maps\.app\.goo\.gl/\S+)`)
	reMapsLong  = regexp.MustCompile(`(?i)(https?://\S*google\.[a-z.]+/maps\S*)`)

	reReceiverLabeled = regexp.MustCompile(`(?mi)^[^\w\n]*recipient(?:\s*name)?\s*:\s*(.+?)\s*$`)
	reCustomerLabeled = regexp.MustCompile(`(?mi)^[^\w\n]*(?:sender|customer)(?:\s*name)?\s*:\s*(.+?)\s*$`)

	phoneToken       = `[+(]?\d[\d ()+-]{6,}`
	rePhoneSender    = regexp.MustCompile(`(?mi)^[^\w\n]*(?:sender|customer)(?:'s)?\s*phone\s*:\s*(` + phoneToken + `)`)
	rePhoneLabeled   = regexp.MustCompile(`(?mi)^[^\w\n]*phone\s*:\s*(` + phoneToken + `)`)
	rePhoneRecipient = regexp.MustCompile(`(?mi)^[^\w\n]*recipient(?:'s)?\s*phone\s*:\s*(` + phoneToken + `)`)
	rePhoneBare      = regexp.MustCompile(`(\+?66[\d -]{8,}\d|\b0\d{8,9}\b)`)

	reContact = regexp.MustCompile(`(?i)(?:preferred\s*contact|contact)\s*:\s*(whatsapp|line|phone)\b`)

	amountToken     = `[\d,]+(?:\.\d+)?`
	reItemsLabeled  = regexp.MustCompile(`(?mi)^[^\w\n]*items\s*total[^:\n]*:\s*(` + amountToken + `)`)
	reTotalFallback = regexp.MustCompile(`(?i)\btotal\s*:?\s*(` + amountToken + `)`)

	reFeeDriver  = regexp.MustCompile(`(?i)(?:delivery\s*)?fee[^\n]*?driver|driver[^\n]*?(?:delivery\s*)?fee`)
	reFeeLabeled = regexp.MustCompile(`(?mi)^[^\w\n]*delivery\s*fee\s*:?\s*(` + amountToken + `)`)

	reImageLabeled = regexp.MustCompile(`(?mi)^[^\w\n]*(?:image|photo|picture)\s*(?:link|url)?\s*:\s*(https?://\S+)`)
	reImageBare    = regexp.MustCompile(`(?i)(https?://\S+\.(?:jpe?g|png|webp|gif)(?:\?\S*)?)`)

	reOrderID   = regexp.MustCompile(`(?mi)^[^\w\n]*order\s*(?:id|number|no\.?)\s*[:#]\s*([A-Za-z0-9-]+)`)
	reOrderLink = regexp.MustCompile(`(?mi)^[^\w\n]*order\s*(?:link|url)\s*:\s*(https?://\S+)`)
)

// matcherFn attempts one pattern and, on success, writes one or more fields.
type matcherFn func(e *LocalExtractor, text string, fields domain.Fields) bool

// fieldMatchers is the ordered pattern list per field. Within each list the
// first matcher that reports success ends the attempts for that field; a
// field already populated (e.g. by a combined pattern) is skipped entirely.
var fieldMatchers = []struct {
	field domain.Field
	fns   []matcherFn
}{
	{domain.FieldBouquetName, []matcherFn{matchBouquetLabeled, matchItemLine}},
	{domain.FieldSize, []matcherFn{matchSizeLabeled}},
	{domain.FieldCardText, []matcherFn{matchCardQuoted, matchCardUnquoted}},
	{domain.FieldDeliveryDate, []matcherFn{
		capture(reDateLabeled, domain.FieldDeliveryDate),
		capture(reDateBare, domain.FieldDeliveryDate),
	}},
	{domain.FieldTimeWindow, []matcherFn{
		capture(reTimeLabeled, domain.FieldTimeWindow),
		matchTimeStandard,
		capture(reTimeBare, domain.FieldTimeWindow),
	}},
	{domain.FieldDistrict, []matcherFn{matchDistrict}},
	{domain.FieldFullAddress, []matcherFn{matchAddressBlock, capture(reAddrSingleLine, domain.FieldFullAddress)}},
	{domain.FieldMapsLink, []matcherFn{
		capture(reMapsShort, domain.FieldMapsLink),
		capture(reMapsLong, domain.FieldMapsLink),
	}},
	{domain.FieldImageLink, []matcherFn{
		capture(reImageLabeled, domain.FieldImageLink),
		capture(reImageBare, domain.FieldImageLink),
	}},
	{domain.FieldReceiverName, []matcherFn{matchName(reReceiverLabeled, domain.FieldReceiverName)}},
	{domain.FieldPhone, []matcherFn{
		capture(rePhoneSender, domain.FieldPhone),
		capture(rePhoneLabeled, domain.FieldPhone),
		capture(rePhoneRecipient, domain.FieldPhone),
		capture(rePhoneBare, domain.FieldPhone),
	}},
	{domain.FieldPreferredContact, []matcherFn{matchContact}},
	{domain.FieldItemsTotal, []matcherFn{
		amount(reItemsLabeled, domain.FieldItemsTotal),
		amount(reTotalFallback, domain.FieldItemsTotal),
	}},
	{domain.FieldDeliveryFee, []matcherFn{matchFeeDriver, amount(reFeeLabeled, domain.FieldDeliveryFee)}},
	{domain.FieldCustomerName, []matcherFn{matchName(reCustomerLabeled, domain.FieldCustomerName)}},
	{domain.FieldOrderID, []matcherFn{capture(reOrderID, domain.FieldOrderID)}},
	{domain.FieldOrderLink, []matcherFn{capture(reOrderLink, domain.FieldOrderLink)}},
}

// Extract runs every field's pattern list against the raw text and returns
// the extracted fields together with the missing critical fields. Each call
// builds a fresh map; repeated calls on the same input are identical.
func (e *LocalExtractor) Extract(rawText string) (domain.Fields, []domain.Field) {
	fields := domain.Fields{}
	for _, fm := range fieldMatchers {
		if fields.Has(fm.field) {
			continue
		}
		for _, fn := range fm.fns {
			if fn(e, rawText, fields) {
				break
			}
		}
	}
	return fields, MissingFields(fields)
}

// capture builds a matcher that stores the first capture group as a string.
func capture(re *regexp.Regexp, field domain.Field) matcherFn {
	return func(_ *LocalExtractor, text string, fields domain.Fields) bool {
		m := re.FindStringSubmatch(text)
		if m == nil {
			return false
		}
		v := strings.TrimSpace(m[1])
		if v == "" {
			return false
		}
		fields.SetString(field, v)
		return true
	}
}

// amount builds a matcher that parses the first capture group as a number.
// An unparseable numeral counts as no match.
func amount(re *regexp.Regexp, field domain.Field) matcherFn {
	return func(_ *LocalExtractor, text string, fields domain.Fields) bool {
		m := re.FindStringSubmatch(text)
		if m == nil {
			return false
		}
		n, ok := parseAmount(m[1])
		if !ok {
			return false
		}
		fields.SetNumber(field, n)
		return true
	}
}

// matchName builds a matcher for person-name labels, treating "N/A" as no
// value.
func matchName(re *regexp.Regexp, field domain.Field) matcherFn {
	return func(_ *LocalExtractor, text string, fields domain.Fields) bool {
		m := re.FindStringSubmatch(text)
		if m == nil {
			return false
		}
		v := strings.TrimSpace(m[1])
		if v == "" || strings.EqualFold(v, "n/a") {
			return false
		}
		fields.SetString(field, v)
		return true
	}
}

func matchBouquetLabeled(_ *LocalExtractor, text string, fields domain.Fields) bool {
	m := reBouquetLabeled.FindStringSubmatch(text)
	if m == nil {
		return false
	}
	name := strings.TrimSpace(m[1])
	if name == "" {
		return false
	}
	fields.SetString(domain.FieldBouquetName, name)
	if m[2] != "" {
		fields.SetString(domain.FieldSize, strings.ToUpper(m[2]))
	}
	return true
}

// matchItemLine handles an itemized "product — variant — price" line, which
// supplies bouquet name, size and items total at once. An items total set by
// an earlier pattern is not overwritten.
func matchItemLine(_ *LocalExtractor, text string, fields domain.Fields) bool {
	m := reItemLine.FindStringSubmatch(text)
	if m == nil {
		return false
	}
	name := strings.TrimSpace(m[1])
	if name == "" {
		return false
	}
	fields.SetString(domain.FieldBouquetName, name)
	if !fields.Has(domain.FieldSize) {
		fields.SetString(domain.FieldSize, strings.ToUpper(m[2]))
	}
	if !fields.Has(domain.FieldItemsTotal) {
		if n, ok := parseAmount(m[3]); ok {
			fields.SetNumber(domain.FieldItemsTotal, n)
		}
	}
	return true
}

func matchSizeLabeled(_ *LocalExtractor, text string, fields domain.Fields) bool {
	m := reSizeLabeled.FindStringSubmatch(text)
	if m == nil {
		return false
	}
	fields.SetString(domain.FieldSize, strings.ToUpper(m[1]))
	return true
}

// matchCardQuoted prefers a quoted span on the card-message line. The quote
// pairs are tried double-before-single so an apostrophe inside a
// double-quoted message does not terminate the span.
func matchCardQuoted(_ *LocalExtractor, text string, fields domain.Fields) bool {
	m := reCardQuoted.FindStringSubmatch(text)
	if m == nil {
		return false
	}
	for _, g := range m[1:] {
		if g != "" {
			fields.SetString(domain.FieldCardText, strings.TrimSpace(g))
			return true
		}
	}
	return false
}

func matchCardUnquoted(_ *LocalExtractor, text string, fields domain.Fields) bool {
	m := reCardUnquoted.FindStringSubmatch(text)
	if m == nil {
		return false
	}
	v := strings.Trim(strings.TrimSpace(m[1]), `"'“”‘’`)
	if v == "" {
		return false
	}
	fields.SetString(domain.FieldCardText, v)
	return true
}

func matchTimeStandard(_ *LocalExtractor, text string, fields domain.Fields) bool {
	if !reTimeStandard.MatchString(text) {
		return false
	}
	fields.SetString(domain.FieldTimeWindow, "Standard (during the day)")
	return true
}

// matchAddressBlock prefers a multi-line address: the lines between an
// address label and the next Google Maps mention, joined with commas. It
// only succeeds when such a terminator exists; otherwise the single-line
// pattern takes over.
func matchAddressBlock(_ *LocalExtractor, text string, fields domain.Fields) bool {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		m := reAddrLabel.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		var parts []string
		if rest := strings.TrimSpace(m[1]); rest != "" {
			parts = append(parts, rest)
		}
		for j := i + 1; j < len(lines); j++ {
			l := strings.TrimSpace(lines[j])
			if reMapsTerminator.MatchString(l) {
				if len(parts) == 0 {
					return false
				}
				fields.SetString(domain.FieldFullAddress, strings.Join(parts, ", "))
				return true
			}
			if l == "" || reAnyLabel.MatchString(l) {
				return false
			}
			parts = append(parts, l)
		}
		return false
	}
	return false
}

func matchDistrict(e *LocalExtractor, text string, fields domain.Fields) bool {
	lower := strings.ToLower(text)
	for _, d := range e.districts {
		if strings.Contains(lower, strings.ToLower(d)) {
			fields.SetString(domain.FieldDistrict, d)
			return true
		}
	}
	return false
}

func matchContact(_ *LocalExtractor, text string, fields domain.Fields) bool {
	m := reContact.FindStringSubmatch(text)
	if m == nil {
		return false
	}
	for _, c := range domain.PreferredContacts {
		if strings.EqualFold(c, m[1]) {
			fields.SetString(domain.FieldPreferredContact, c)
			return true
		}
	}
	return false
}

// matchFeeDriver zeroes the delivery fee when the text says the driver
// determines or collects it, regardless of any numeral elsewhere.
func matchFeeDriver(_ *LocalExtractor, text string, fields domain.Fields) bool {
	if !reFeeDriver.MatchString(text) {
		return false
	}
	fields.SetNumber(domain.FieldDeliveryFee, 0)
	return true
}
