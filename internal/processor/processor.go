package processor

import (
	"bytes"
	"encoding/json"
	"log"
	"math/rand"

	"github.com/Tim0320/xiaomi-search/internal/collector"
)

// 下發協議中的固定標識
const (
	configID    = "R-10"
	successHash = "c2d15b8822404d2ea10f48b759eadba1"
	successQT   = "composite_ad_yahoo_google"

	fallbackHash = "news_fallback"
	fallbackQT   = "composite_ad_news"

	// minimalFallback 構造備用數據本身也失敗時的最後兜底
	minimalFallback = `{"status":0,"message":"success","hash":"fallback","result":[]}`
)

// NewsEntry 單條新聞在下發 JSON 中的形態
type NewsEntry struct {
	Text           string `json:"text"`
	URL            string `json:"url"`
	H5URL          string `json:"h5_url"`
	AppIconURL     string `json:"appIconUrl"`
	SourceUniqueID string `json:"sourceUniqueId"`
	Package        string `json:"package"`
}

// Section 一個來源的新聞分組
type Section struct {
	TrackID        string      `json:"track_id"`
	Title          string      `json:"title"`
	TitleIconURL   string      `json:"title_icon_url"`
	HeadImageURL   string      `json:"headImageUrl"`
	LinkType       string      `json:"link_type"`
	Data           []NewsEntry `json:"data"`
	SelectedStatus bool        `json:"selectedStatus"`
	RankType       string      `json:"rank_type"`
}

// UpdateIntervals 各網絡制式下的刷新間隔（分鐘）
type UpdateIntervals struct {
	TwoG   int `json:"2G"`
	ThreeG int `json:"3G"`
	FourG  int `json:"4G"`
	WiFi   int `json:"WIFI"`
}

// Response 完整的下發文檔
type Response struct {
	ConfigID              string          `json:"config_id"`
	UpdateIntervalMinutes UpdateIntervals `json:"updateIntervalMinutes"`
	Result                []Section       `json:"result"`
	Hash                  string          `json:"hash"`
	QT                    string          `json:"qt"`
	Message               string          `json:"message"`
	Cost                  int             `json:"cost"`
	Status                int             `json:"status"`
}

// Processor 把兩個來源的提取結果組裝成下發文檔
type Processor struct{}

func NewProcessor() *Processor {
	return &Processor{}
}

func defaultIntervals() UpdateIntervals {
	return UpdateIntervals{TwoG: 20, ThreeG: 20, FourG: 20, WiFi: 20}
}

func toEntries(items []collector.NewsItem) []NewsEntry {
	entries := make([]NewsEntry, 0, len(items))
	for _, it := range items {
		entries = append(entries, NewsEntry{
			Text:           it.Title,
			URL:            it.URL,
			H5URL:          it.URL,
			SourceUniqueID: it.Source,
		})
	}
	return entries
}

// Build 組裝下發文檔：Yahoo 分組在前，Google 在後，空來源不輸出分組；
// 兩個來源都為空時原樣返回備用文檔。
func (p *Processor) Build(yahoo, google []collector.NewsItem) *Response {
	result := make([]Section, 0, 2)

	if len(yahoo) > 0 {
		result = append(result, Section{
			TrackID:  "hq_yahoo",
			Title:    "Yahoo!",
			LinkType: "app",
			Data:     toEntries(yahoo),
			RankType: "rank_ahoo",
		})
	}
	if len(google) > 0 {
		result = append(result, Section{
			TrackID:  "hq_google",
			Title:    "Google",
			LinkType: "app",
			Data:     toEntries(google),
			RankType: "rank_google",
		})
	}

	if len(result) == 0 {
		log.Println("processor: no news from any source, using fallback data")
		return p.Fallback()
	}

	return &Response{
		ConfigID:              configID,
		UpdateIntervalMinutes: defaultIntervals(),
		Result:                result,
		Hash:                  successHash,
		QT:                    successQT,
		Message:               "success",
		Cost:                  10 + rand.Intn(41),
		Status:                0,
	}
}

// Fallback 構造降級模式的靜態文檔：每個來源一條固定的失敗說明，
// 鏈接指向來源首頁
func (p *Processor) Fallback() *Response {
	return &Response{
		ConfigID:              configID,
		UpdateIntervalMinutes: defaultIntervals(),
		Result: []Section{
			{
				TrackID:  "hq_yahoo",
				Title:    "Yahoo!",
				LinkType: "app",
				Data: []NewsEntry{{
					Text:           "無法訪問Yahoo新聞，請檢查網絡連接",
					URL:            collector.YahooNewsURL,
					H5URL:          collector.YahooNewsURL,
					SourceUniqueID: collector.SourceYahoo,
				}},
				RankType: "Yahoo",
			},
			{
				TrackID:  "hq_google",
				Title:    "Google",
				LinkType: "app",
				Data: []NewsEntry{{
					Text:           "無法訪問Google新聞，請檢查網絡連接",
					URL:            collector.GoogleNewsWebURL,
					H5URL:          collector.GoogleNewsWebURL,
					SourceUniqueID: collector.SourceGoogle,
				}},
				RankType: "Google",
			},
		},
		Hash:    fallbackHash,
		QT:      fallbackQT,
		Message: "success",
		Cost:    20,
		Status:  0,
	}
}

// Marshal 序列化下發文檔：兩格縮進，非 ASCII 字符按原文輸出不轉義。
// 序列化失敗時返回最簡兜底文檔，保證任何情況下都有合法輸出。
func Marshal(r *Response) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		log.Printf("processor: marshal failed: %v", err)
		return minimalFallback
	}
	return string(bytes.TrimRight(buf.Bytes(), "\n"))
}

// FallbackJSON 降級文檔的序列化形式
func (p *Processor) FallbackJSON() string {
	return Marshal(p.Fallback())
}
