package verification

import (
	"context"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/google/uuid"
	qrcode "github.com/skip2/go-qrcode"
)

// IArtifactGenerator 產生訂單驗證碼(可掃描的proof-of-order)
// 產生失敗時整筆下單必須中止, 不做best-effort
type IArtifactGenerator interface {
	Generate(ctx context.Context, userID uuid.UUID, at time.Time) (string, error)
}

type QRCodeGenerator struct {
	size int
}

func NewQRCodeGenerator() *QRCodeGenerator {
	return &QRCodeGenerator{size: 256}
}

// Generate 以userID與下單時間組成內容, 回傳base64編碼的PNG
func (g *QRCodeGenerator) Generate(ctx context.Context, userID uuid.UUID, at time.Time) (string, error) {
	content := fmt.Sprintf("order:%s:%d", userID, at.UnixNano())

	png, err := qrcode.Encode(content, qrcode.Medium, g.size)
	if err != nil {
		return "", fmt.Errorf("failed to generate verification code: %w", err)
	}

	return base64.StdEncoding.EncodeToString(png), nil
}

var _ IArtifactGenerator = (*QRCodeGenerator)(nil)
