package domain

// DefaultKnowledgeBase returns the rows a new session starts with.
func DefaultKnowledgeBase() KnowledgeBase {
	return KnowledgeBase{
		{Question: "你們的營業時間是？", Answer: "我們的客服時間為週一至週五 09:00–18:00（國定假日除外）。"},
		{Question: "如何申請退貨？", Answer: "請於到貨 7 天內透過訂單頁面點選『申請退貨』，系統將引導您完成流程。"},
		{Question: "運費如何計算？", Answer: "單筆訂單滿 NT$ 1000 免運，未滿則酌收 NT$ 80。"},
		{Question: "可以開立發票嗎？", Answer: "我們提供電子發票，請於結帳時填寫統一編號與抬頭。"},
	}
}
