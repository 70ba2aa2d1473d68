package domain

import "encoding/json"

// ExternalID — внешний идентификатор вакансии у продюсера.
// Скраперы шлют id то строкой, то числом — приводим к строке при декодировании.
type ExternalID string

// UnmarshalJSON принимает строку или число; null превращается в пустую строку.
func (e *ExternalID) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*e = ExternalID(s)
		return nil
	}

	if string(data) == "null" {
		*e = ""
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*e = ExternalID(n.String())
	return nil
}

func (e ExternalID) String() string { return string(e) }

// RawJob — сообщение из топика как его присылает продюсер.
// Обязательные поля: id, title, company, url; location может отсутствовать.
// Неизвестные поля не запрещаем — состав payload у скраперов разный.
type RawJob struct {
	ID       ExternalID `json:"id"`
	Title    string     `json:"title"`
	Company  string     `json:"company"`
	URL      string     `json:"url"`
	Location string     `json:"location,omitempty"`
}

// Job — RawJob плюс канонизированная локация.
// Живёт ровно одну итерацию цикла обработки, никуда не сохраняется.
type Job struct {
	RawJob
	NormalizedLocation string `json:"normalized_location"`
}
