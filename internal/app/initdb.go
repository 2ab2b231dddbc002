package app

import (
	"go.uber.org/zap"

	"github.com/talkincode/streamstore/internal/domain"
)

type seedService struct {
	Name     string
	Logo     string
	Products []domain.Product
}

var defaultCatalog = []seedService{
	{
		Name: "Netflix",
		Logo: "https://upload.wikimedia.org/wikipedia/commons/0/08/Netflix_2015_logo.svg",
		Products: []domain.Product{
			{Name: "4K 30 Dias | 1 tela com PIN", Price: 24.90, Description: "Acesso premium 4K por 30 dias.", Observations: "Entrega imediata via WhatsApp.", Image: "https://picsum.photos/seed/netflix1/400/300"},
			{Name: "Somente pra TV 4K 30 Dias | 1 tela com PIN", Price: 19.90, Description: "Exclusivo para Smart TV.", Observations: "PIN de segurança incluso.", Image: "https://picsum.photos/seed/netflix2/400/300"},
			{Name: "4K 7 Dias Compartilhada [Promoção]", Price: 8.90, Description: "Acesso compartilhado por 7 dias.", Observations: "Preço promocional.", Image: "https://picsum.photos/seed/netflix3/400/300"},
			{Name: "4K 30 Dias Compartilhada", Price: 13.90, Description: "Acesso compartilhado por 30 dias.", Observations: "Melhor custo-benefício.", Image: "https://picsum.photos/seed/netflix4/400/300"},
		},
	},
	{
		Name: "Spotify",
		Logo: "https://upload.wikimedia.org/wikipedia/commons/1/19/Spotify_logo_with_text.svg",
		Products: []domain.Product{
			{Name: "Spotify Premium - Link 3 Meses", Price: 20.90, Description: "3 meses de Spotify Premium.", Observations: "Link de convite familiar.", Image: "https://picsum.photos/seed/spotify/400/300"},
		},
	},
	{
		Name: "Canva",
		Logo: "https://upload.wikimedia.org/wikipedia/commons/0/0e/Canva_logo.svg",
		Products: []domain.Product{
			{Name: "Canva Pro", Price: 15.90, Description: "Acesso total ao Canva Pro.", Observations: "Ativação no seu e-mail.", Image: "https://picsum.photos/seed/canva/400/300"},
		},
	},
	{
		Name: "Prime Video",
		Logo: "https://upload.wikimedia.org/wikipedia/commons/1/11/Amazon_Prime_Video_logo.svg",
		Products: []domain.Product{
			{Name: "Conta Completa", Price: 12.90, Description: "Acesso total ao Prime Video.", Observations: "30 dias de validade.", Image: "https://picsum.photos/seed/prime/400/300"},
		},
	},
	{
		Name: "Paramount+",
		Logo: "https://upload.wikimedia.org/wikipedia/commons/a/a5/Paramount_Plus.svg",
		Products: []domain.Product{
			{Name: "Conta Completa", Price: 18.90, Description: "Acesso total ao Paramount+.", Observations: "30 dias de validade.", Image: "https://picsum.photos/seed/paramount/400/300"},
		},
	},
	{
		Name: "CapCut",
		Logo: "https://upload.wikimedia.org/wikipedia/commons/a/af/CapCut_logo.svg",
		Products: []domain.Product{
			{Name: "CapCut Pro 7 Dias Privado", Price: 7.90, Description: "Acesso privado por 7 dias.", Observations: "Recursos Pro liberados.", Image: "https://picsum.photos/seed/capcut1/400/300"},
			{Name: "CapCut Pro 28 Dias Privado", Price: 20.90, Description: "Acesso privado por 28 dias.", Observations: "Melhor para editores.", Image: "https://picsum.photos/seed/capcut2/400/300"},
		},
	},
}

var defaultSlides = []domain.Slide{
	{Message: "Melhor loja de streamings", Image: "https://picsum.photos/seed/stream0/1200/600"},
	{Message: "Promoções exclusivas", Image: "https://picsum.photos/seed/stream1/1200/600"},
	{Message: "Serviços digitais para você", Image: "https://picsum.photos/seed/stream2/1200/600"},
}

// checkCatalog seeds the default services and products when the services
// table is empty.
func (a *Application) checkCatalog() {
	var count int64
	if err := a.gormDB.Model(&domain.Service{}).Count(&count).Error; err != nil {
		zap.L().Error("failed to count services", zap.Error(err))
		return
	}
	if count > 0 {
		return
	}
	for _, s := range defaultCatalog {
		svc := domain.Service{Name: s.Name, Logo: s.Logo}
		if err := a.gormDB.Create(&svc).Error; err != nil {
			zap.L().Error("failed to create default service", zap.String("name", s.Name), zap.Error(err))
			continue
		}
		for _, p := range s.Products {
			p.ServiceID = svc.ID
			if err := a.gormDB.Create(&p).Error; err != nil {
				zap.L().Error("failed to create default product", zap.String("name", p.Name), zap.Error(err))
			}
		}
		zap.L().Info("initialized default service",
			zap.String("name", svc.Name),
			zap.Int("products", len(s.Products)))
	}
}

// checkSlides seeds the home page slides when none exist.
func (a *Application) checkSlides() {
	var count int64
	if err := a.gormDB.Model(&domain.Slide{}).Count(&count).Error; err != nil {
		zap.L().Error("failed to count slides", zap.Error(err))
		return
	}
	if count > 0 {
		return
	}
	for _, s := range defaultSlides {
		if err := a.gormDB.Create(&s).Error; err != nil {
			zap.L().Error("failed to create default slide", zap.String("message", s.Message), zap.Error(err))
		}
	}
	zap.L().Info("initialized default slides", zap.Int("count", len(defaultSlides)))
}
