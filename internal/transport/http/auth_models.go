package http

type createSessionRequest struct {
	Token    string `json:"token"`
	UserID   string `json:"userId"`
	UserName string `json:"userName"`
}

type requestAuthRequest struct {
	UserID   string `json:"userId"`
	UserName string `json:"userName"`
}

type verifyAuthRequest struct {
	Token    string `json:"token"`
	UserID   string `json:"userId"`
	UserName string `json:"userName"`
}

type dismissNoticeRequest struct {
	UserID   string `json:"userId"`
	NoticeID string `json:"noticeId"`
}

type captionRequest struct {
	FileName string `json:"filename"`
	Caption  string `json:"caption"`
}
