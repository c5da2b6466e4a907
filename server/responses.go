package server

import (
	"time"

	"lottostore/domain/entities"
)

type userResponse struct {
	ID        int64             `json:"id"`
	Email     string            `json:"email"`
	Username  string            `json:"username"`
	Balance   int64             `json:"balance"`
	IsAdmin   bool              `json:"is_admin"`
	BankInfo  *bankInfoResponse `json:"bank_info,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
}

type bankInfoResponse struct {
	BankName      string `json:"bank_name"`
	BranchName    string `json:"branch_name"`
	AccountNumber string `json:"account_number"`
	AccountName   string `json:"account_name"`
}

func toUserResponse(user *entities.User) userResponse {
	resp := userResponse{
		ID:        user.ID,
		Email:     user.Email,
		Username:  user.Username,
		Balance:   user.Balance,
		IsAdmin:   user.IsAdmin,
		CreatedAt: user.CreatedAt,
	}
	if user.BankInfo.IsComplete() {
		resp.BankInfo = &bankInfoResponse{
			BankName:      user.BankInfo.BankName,
			BranchName:    user.BankInfo.BranchName,
			AccountNumber: user.BankInfo.AccountNumber,
			AccountName:   user.BankInfo.AccountName,
		}
	}
	return resp
}

type gameResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	FullName    string `json:"full_name"`
	DrawDayText string `json:"draw_day_text"`
	MaxJackpot  string `json:"max_jackpot"`
	Price       int64  `json:"price"`
	MaxNumber   int    `json:"max_number"`
	PickCount   int    `json:"pick_count"`
	Jackpot     int64  `json:"jackpot"`
}

func toGameResponse(game *entities.Game) gameResponse {
	return gameResponse{
		ID:          game.ID,
		Name:        game.Name,
		FullName:    game.FullName,
		DrawDayText: game.DrawDayText,
		MaxJackpot:  game.MaxJackpot,
		Price:       game.Price,
		MaxNumber:   game.MaxNumber,
		PickCount:   game.PickCount,
		Jackpot:     game.Jackpot,
	}
}

type purchaseResponse struct {
	ID        string    `json:"id"`
	GameID    string    `json:"game_id"`
	Lines     [][]int   `json:"lines"`
	Status    string    `json:"status"`
	WinAmount int64     `json:"win_amount"`
	CreatedAt time.Time `json:"created_at"`
}

func toPurchaseResponse(p *entities.Purchase) purchaseResponse {
	return purchaseResponse{
		ID:        p.PublicID,
		GameID:    p.GameID,
		Lines:     p.Lines,
		Status:    string(p.Status),
		WinAmount: p.WinAmount,
		CreatedAt: p.CreatedAt,
	}
}

func toPurchaseResponses(purchases []*entities.Purchase) []purchaseResponse {
	out := make([]purchaseResponse, 0, len(purchases))
	for _, p := range purchases {
		out = append(out, toPurchaseResponse(p))
	}
	return out
}

type transactionResponse struct {
	ID          int64             `json:"id"`
	PublicID    string            `json:"public_id"`
	UserID      int64             `json:"user_id"`
	Kind        string            `json:"kind"`
	Amount      int64             `json:"amount"`
	Status      string            `json:"status"`
	BankDetails *bankInfoResponse `json:"bank_details,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
	ProcessedAt *time.Time        `json:"processed_at,omitempty"`
}

func toTransactionResponse(tx *entities.Transaction) transactionResponse {
	resp := transactionResponse{
		ID:          tx.ID,
		PublicID:    tx.PublicID,
		UserID:      tx.UserID,
		Kind:        string(tx.Kind),
		Amount:      tx.Amount,
		Status:      string(tx.Status),
		CreatedAt:   tx.CreatedAt,
		ProcessedAt: tx.ProcessedAt,
	}
	if tx.BankDetails != nil {
		resp.BankDetails = &bankInfoResponse{
			BankName:      tx.BankDetails.BankName,
			BranchName:    tx.BankDetails.BranchName,
			AccountNumber: tx.BankDetails.AccountNumber,
			AccountName:   tx.BankDetails.AccountName,
		}
	}
	return resp
}

func toTransactionResponses(txs []*entities.Transaction) []transactionResponse {
	out := make([]transactionResponse, 0, len(txs))
	for _, tx := range txs {
		out = append(out, toTransactionResponse(tx))
	}
	return out
}

type winningSetResponse struct {
	GameID   string `json:"game_id"`
	DrawDate string `json:"draw_date"`
	Numbers  []int  `json:"numbers"`
	Source   string `json:"source"`
}

func toWinningSetResponse(set *entities.WinningNumberSet) winningSetResponse {
	return winningSetResponse{
		GameID:   set.GameID,
		DrawDate: entities.FormatDrawDate(set.DrawDate),
		Numbers:  set.Numbers,
		Source:   string(set.Source),
	}
}

func toWinningSetResponses(sets []*entities.WinningNumberSet) []winningSetResponse {
	out := make([]winningSetResponse, 0, len(sets))
	for _, set := range sets {
		out = append(out, toWinningSetResponse(set))
	}
	return out
}
