package collector

// 兩個固定新聞來源的常量定義
const (
	YahooNewsURL     = "https://tw.news.yahoo.com/"
	GoogleNewsRSSURL = "https://news.google.com/rss?hl=zh-TW&gl=TW&ceid=TW:zh-Hant"
	GoogleNewsWebURL = "https://news.google.com/home?hl=zh-TW&gl=TW&ceid=TW:zh-Hant"

	SourceYahoo  = "content_yahoo"
	SourceGoogle = "content_google"

	// MaxNewsItems 每個來源最多保留的新聞條數
	MaxNewsItems = 15
)

// NewsItem 提取並通過過濾後的統一結構（標題已清洗）
type NewsItem struct {
	Title  string
	URL    string
	Source string
}

// Fetcher 抽象每一個數據源：負責拉取原始文本並提取新聞條目
type Fetcher interface {
	Name() string
	Fetch() ([]NewsItem, error)
}

// Extractor 只負責從已獲取的原始文本中提取新聞條目，
// 解析失敗一律返回空結果而不是錯誤
type Extractor interface {
	Extract(text string) []NewsItem
}
