package alert

import (
	"fmt"
	"strings"

	"github.com/darkkaiser/linkcompra-server/internal/domain/catalog"
	"github.com/darkkaiser/linkcompra-server/internal/domain/lead"
	"github.com/darkkaiser/linkcompra-server/internal/pkg/mark"
)

const messageTitle = "Alerta de preço LinkCompra"

// productURL "{site}/produto/{slug 또는 id}"
func productURL(siteBaseURL string, p *catalog.ComparisonProduct) string {
	return strings.TrimRight(siteBaseURL, "/") + "/produto/" + p.PathSegment()
}

func renderMessage(siteBaseURL string, p *catalog.ComparisonProduct, best catalog.StorePrice, l *lead.Lead) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "%s O preço baixou!\n\n", mark.PriceDrop)
	fmt.Fprintf(&sb, "*%s*\n", p.Name)
	fmt.Fprintf(&sb, "Agora: %s na %s\n", best.Price.FormatBRL(), best.Store.DisplayName())
	fmt.Fprintf(&sb, "Seu preço-alvo: %s\n", l.TargetPrice.FormatBRL())

	if best.LowestPrice.IsPositive() && best.Price.Equal(best.LowestPrice) {
		fmt.Fprintf(&sb, "%s Menor preço já registrado nesta loja!\n", mark.BestPrice)
	}

	fmt.Fprintf(&sb, "\n%s %s", mark.Link, productURL(siteBaseURL, p))

	return sb.String()
}
