package registry

import "strings"

// RegionResolver maps a free-text address to an administrative region. The
// extraction is a heuristic, so it is pluggable: the default gazetteer
// strategy can be swapped without touching the normalizer.
type RegionResolver interface {
	Resolve(address string) (code string, name string, ok bool)
}

// regionNames is the canonical federal subject gazetteer, keyed by the
// two-digit region code used throughout the registry.
var regionNames = map[string]string{
	"01": "Республика Адыгея",
	"02": "Республика Башкортостан",
	"03": "Республика Бурятия",
	"04": "Республика Алтай",
	"05": "Республика Дагестан",
	"06": "Республика Ингушетия",
	"07": "Кабардино-Балкарская Республика",
	"08": "Республика Калмыкия",
	"09": "Карачаево-Черкесская Республика",
	"10": "Республика Карелия",
	"11": "Республика Коми",
	"12": "Республика Марий Эл",
	"13": "Республика Мордовия",
	"14": "Республика Саха (Якутия)",
	"15": "Республика Северная Осетия - Алания",
	"16": "Республика Татарстан",
	"17": "Республика Тыва",
	"18": "Удмуртская Республика",
	"19": "Республика Хакасия",
	"20": "Чеченская Республика",
	"21": "Чувашская Республика",
	"22": "Алтайский край",
	"23": "Краснодарский край",
	"24": "Красноярский край",
	"25": "Приморский край",
	"26": "Ставропольский край",
	"27": "Хабаровский край",
	"28": "Амурская область",
	"29": "Архангельская область",
	"30": "Астраханская область",
	"31": "Белгородская область",
	"32": "Брянская область",
	"33": "Владимирская область",
	"34": "Волгоградская область",
	"35": "Вологодская область",
	"36": "Воронежская область",
	"37": "Ивановская область",
	"38": "Иркутская область",
	"39": "Калининградская область",
	"40": "Калужская область",
	"41": "Камчатский край",
	"42": "Кемеровская область",
	"43": "Кировская область",
	"44": "Костромская область",
	"45": "Курганская область",
	"46": "Курская область",
	"47": "Ленинградская область",
	"48": "Липецкая область",
	"49": "Магаданская область",
	"50": "Московская область",
	"51": "Мурманская область",
	"52": "Нижегородская область",
	"53": "Новгородская область",
	"54": "Новосибирская область",
	"55": "Омская область",
	"56": "Оренбургская область",
	"57": "Орловская область",
	"58": "Пензенская область",
	"59": "Пермский край",
	"60": "Псковская область",
	"61": "Ростовская область",
	"62": "Рязанская область",
	"63": "Самарская область",
	"64": "Саратовская область",
	"65": "Сахалинская область",
	"66": "Свердловская область",
	"67": "Смоленская область",
	"68": "Тамбовская область",
	"69": "Тверская область",
	"70": "Томская область",
	"71": "Тульская область",
	"72": "Тюменская область",
	"73": "Ульяновская область",
	"74": "Челябинская область",
	"75": "Забайкальский край",
	"76": "Ярославская область",
	"77": "Москва",
	"78": "Санкт-Петербург",
	"79": "Еврейская автономная область",
	"83": "Ненецкий автономный округ",
	"86": "Ханты-Мансийский автономный округ - Югра",
	"87": "Чукотский автономный округ",
	"89": "Ямало-Ненецкий автономный округ",
	"91": "Республика Крым",
	"92": "Севастополь",
}

// RegionName returns the canonical name for a region code.
func RegionName(code string) (string, bool) {
	name, ok := regionNames[code]
	return name, ok
}

// NormalizeRegionCode pads single-digit codes to the two-digit form the
// registry uses ("7" and "07" are the same region).
func NormalizeRegionCode(code string) string {
	code = strings.TrimSpace(code)
	if len(code) == 1 {
		return "0" + code
	}
	return code
}

// GazetteerResolver matches the leading comma-delimited address segment
// against the canonical region name list.
type GazetteerResolver struct {
	byName map[string]string // normalized name -> code
}

// NewGazetteerResolver builds the reverse name index, including the common
// aliases that appear in registry addresses ("г. Москва", "г.Санкт-Петербург").
func NewGazetteerResolver() *GazetteerResolver {
	byName := make(map[string]string, len(regionNames)*2)
	for code, name := range regionNames {
		byName[normalizeRegionName(name)] = code
	}
	aliases := map[string]string{
		"г москва":          "77",
		"город москва":      "77",
		"г санкт-петербург": "78",
		"город санкт-петербург": "78",
		"г севастополь":     "92",
		"город севастополь": "92",
		"московская обл":    "50",
		"ленинградская обл": "47",
	}
	for alias, code := range aliases {
		byName[normalizeRegionName(alias)] = code
	}
	return &GazetteerResolver{byName: byName}
}

// Resolve extracts the leading comma-delimited segment of the address and
// looks it up in the gazetteer. A postal index segment in front is skipped.
// Failure to match is not an error; region resolution is best effort.
func (g *GazetteerResolver) Resolve(address string) (string, string, bool) {
	segments := strings.SplitN(address, ",", 3)
	for _, segment := range segments {
		segment = normalizeRegionName(segment)
		if segment == "" || digitsOnlyASCII(segment) {
			continue
		}
		if code, ok := g.byName[segment]; ok {
			name, _ := RegionName(code)
			return code, name, true
		}
		break
	}
	return "", "", false
}

// normalizeRegionName lowercases, strips punctuation and index prefixes,
// and collapses whitespace so that spelling variants compare equal.
func normalizeRegionName(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	name = strings.Trim(name, ".")
	replacer := strings.NewReplacer(".", " ", ",", " ", "«", "", "»", "", "\"", "")
	name = replacer.Replace(name)

	fields := strings.Fields(name)
	// Drop a leading postal index if present.
	if len(fields) > 1 && digitsOnlyASCII(fields[0]) {
		fields = fields[1:]
	}
	return strings.Join(fields, " ")
}

func digitsOnlyASCII(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
