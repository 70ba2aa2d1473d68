// Пакет normalize — канонизация свободного текста локации вакансии
// в отсортированную строку токенов для консистентного поиска/матчинга.
// Чистые функции без состояния; любой вход даёт какой-то выход, ошибок нет.
package normalize

import (
	"regexp"
	"sort"
	"strings"
)

// stateAbbr — полные названия штатов/территорий США и их двухбуквенные коды.
var stateAbbr = map[string]string{
	"alabama": "al", "alaska": "ak", "arizona": "az", "arkansas": "ar", "california": "ca",
	"colorado": "co", "connecticut": "ct", "delaware": "de", "florida": "fl", "georgia": "ga",
	"hawaii": "hi", "idaho": "id", "illinois": "il", "indiana": "in", "iowa": "ia",
	"kansas": "ks", "kentucky": "ky", "louisiana": "la", "maine": "me", "maryland": "md",
	"massachusetts": "ma", "michigan": "mi", "minnesota": "mn", "mississippi": "ms",
	"missouri": "mo", "montana": "mt", "nebraska": "ne", "nevada": "nv", "new hampshire": "nh",
	"new jersey": "nj", "new mexico": "nm", "new york": "ny", "north carolina": "nc",
	"north dakota": "nd", "ohio": "oh", "oklahoma": "ok", "oregon": "or", "pennsylvania": "pa",
	"rhode island": "ri", "south carolina": "sc", "south dakota": "sd", "tennessee": "tn",
	"texas": "tx", "utah": "ut", "vermont": "vt", "virginia": "va", "washington": "wa",
	"west virginia": "wv", "wisconsin": "wi", "wyoming": "wy",
	// территории и округа
	"district of columbia": "dc", "puerto rico": "pr", "us virgin islands": "vi",
	"guam": "gu", "american samoa": "as", "northern mariana islands": "mp",
}

// abbrState — обратная карта: код → полное название.
var abbrState = func() map[string]string {
	m := make(map[string]string, len(stateAbbr))
	for name, abbr := range stateAbbr {
		m[abbr] = name
	}
	return m
}()

// cityNicknames — распространённые прозвища городов/регионов.
// Подстановка идёт по одному токену, поэтому многословные ключи
// ("bay area" и т.п.) фактически не срабатывают — оставлены для полноты таблицы.
var cityNicknames = map[string]string{
	"nyc":             "new york city",
	"sf":              "san francisco",
	"la":              "los angeles",
	"boston metro":    "boston",
	"bay area":        "san francisco bay area",
	"philly":          "philadelphia",
	"atl":             "atlanta",
	"dallas ft worth": "dallas",
}

// remoteTerms — синонимы удалённой работы, схлопываются в "remote".
var remoteTerms = map[string]struct{}{
	"remote": {}, "home": {}, "virtual": {}, "fully remote": {},
	"work from home": {}, "wfh": {}, "anywhere": {},
}

// noiseTerms — гео/корпоративный шум без поисковой ценности.
// Коды штатов тоже шум: после подстановки полных названий они всегда избыточны.
var noiseTerms = func() map[string]struct{} {
	words := []string{
		"area", "metro", "county", "district", "city", "region", "state", "us", "usa", "united states",
		"global", "worldwide", "office", "headquarters", "hq", "hubs", "inc", "llc", "corp", "company",
	}
	m := make(map[string]struct{}, len(words)+len(stateAbbr))
	for _, w := range words {
		m[w] = struct{}{}
	}
	for _, abbr := range stateAbbr {
		m[abbr] = struct{}{}
	}
	return m
}()

var (
	separatorsRe = regexp.MustCompile(`[/\-,]`) // запятая, слеш, дефис → пробел
	punctRe      = regexp.MustCompile(`[^\w\s]`)
)

// Location приводит сырую строку локации к канонической форме:
// lowercase → чистка пунктуации → подстановка сокращений → удаление шума →
// дедупликация → сортировка. Для пустого входа возвращает пустую строку.
// Если после чистки не осталось ни одного токена, возвращается очищенная,
// но нестандартизованная строка — нераспознанная локация не теряется.
func Location(raw string) string {
	if raw == "" {
		return ""
	}

	cleaned := strings.ToLower(strings.TrimSpace(raw))
	cleaned = separatorsRe.ReplaceAllString(cleaned, " ")
	cleaned = punctRe.ReplaceAllString(cleaned, "")

	standardized := make([]string, 0, 8)
	for _, word := range strings.Fields(cleaned) {
		switch {
		case isRemote(word):
			standardized = append(standardized, "remote")
		case cityNicknames[word] != "":
			standardized = append(standardized, strings.Fields(cityNicknames[word])...)
		case abbrState[word] != "":
			// код штата → полное название для консистентного поиска
			standardized = append(standardized, abbrState[word])
		case stateAbbr[word] != "":
			// полное название: добавляем и код (удобно для ILIKE-матчинга)
			standardized = append(standardized, word, stateAbbr[word])
		default:
			standardized = append(standardized, word)
		}
	}

	// дедупликация + фильтр шума и односимвольных токенов
	unique := make(map[string]struct{}, len(standardized))
	for _, word := range standardized {
		if _, noise := noiseTerms[word]; noise || len(word) <= 1 {
			continue
		}
		unique[word] = struct{}{}
	}

	tokens := make([]string, 0, len(unique))
	for word := range unique {
		tokens = append(tokens, word)
	}
	sort.Strings(tokens)

	if len(tokens) == 0 {
		return strings.Join(strings.Fields(cleaned), " ")
	}
	return strings.Join(tokens, " ")
}

func isRemote(word string) bool {
	_, ok := remoteTerms[word]
	return ok
}
