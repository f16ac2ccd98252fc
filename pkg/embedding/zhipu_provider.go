package embedding

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

type ZhipuProvider struct {
	ApiKey string
	ApiURL string
	Model  string
	Client *http.Client
}

var _ Provider = &ZhipuProvider{}

func NewZhipuProvider(apiKey, apiURL, model string, timeout time.Duration) *ZhipuProvider {
	return &ZhipuProvider{
		ApiKey: apiKey,
		ApiURL: apiURL,
		Model:  model,
		Client: &http.Client{Timeout: timeout},
	}
}

type zhipuEmbeddingRequest struct {
	Model string `json:"model"`
	Input string `json:"input"`
}

type zhipuEmbeddingResponse struct {
	Data []struct {
		Embedding []float32 `json:"embedding"`
	} `json:"data"`
}

func (p *ZhipuProvider) Embed(ctx context.Context, text string) ([]float32, error) {
	reqJson, err := json.Marshal(zhipuEmbeddingRequest{
		Model: p.Model,
		Input: text,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", p.ApiURL, bytes.NewBuffer(reqJson))
	if err != nil {
		return nil, err
	}

	req.Header.Set("Authorization", "Bearer "+p.ApiKey)
	req.Header.Set("Content-Type", "application/json")

	res, err := p.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	resByte, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, err
	}

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("error from zhipu response, code %d, body %s", res.StatusCode, string(resByte))
	}

	var resEmbedding zhipuEmbeddingResponse
	if err := json.Unmarshal(resByte, &resEmbedding); err != nil {
		return nil, err
	}
	if len(resEmbedding.Data) == 0 {
		return nil, fmt.Errorf("zhipu response contained no embedding")
	}

	return resEmbedding.Data[0].Embedding, nil
}
