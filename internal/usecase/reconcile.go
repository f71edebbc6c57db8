package usecase

import (
	"context"
	"fmt"

	"github.com/Gunvolt24/wb_cart/internal/domain"
	"github.com/Gunvolt24/wb_cart/pkg/metrics"
	"github.com/Gunvolt24/wb_cart/pkg/validate"
)

// Sync — сверка клиентского снапшота корзины (например, из local storage
// анонимной сессии) с актуальными остатками и ПОЛНАЯ замена серверной корзины
// результатом. Это намеренно деструктивная перезапись, а не слияние:
// сверка выполняется один раз, в момент принятия локальной корзины
// аутентифицированной сессией.
//
// Каждая строка снапшота оценивается независимо: отказ по одной строке
// не мешает принять остальные. На N строк приходится ровно N исходов —
// строка либо входит в итог, либо получает диагностику удаления.
// Диагностики не персистятся и отдаются вызывающему для показа.
func (s *CartService) Sync(ctx context.Context, userID string, snapshot []domain.LineRequest) (hydrated []domain.HydratedLine, diags []domain.Diagnostic, err error) {
	defer func() { observeCartOp("sync", err) }()

	if userID == "" {
		return nil, nil, ErrEmptyUserID
	}

	s.userLocks.Lock(userID)
	defer s.userLocks.Unlock(userID)

	// Дубликаты идентичностей схлопываются заранее (количества суммируются),
	// чтобы ни одна строка не была отброшена молча.
	merged := domain.MergeSnapshot(snapshot)

	finalLines := make([]domain.CartLine, 0, len(merged))
	diagnostics := make([]domain.Diagnostic, 0)

	for _, req := range merged {
		av, avErr := s.inventory.Availability(ctx, req.ProductID)
		if avErr != nil {
			// Недоступность каталога — системная ошибка всей сверки,
			// частичный результат не сохраняем.
			return nil, nil, fmt.Errorf("availability: %w", avErr)
		}

		capped, vErr := s.validator.Validate(ctx, req, av)
		if vErr != nil {
			d := diagnosticFor(vErr, req)
			diagnostics = append(diagnostics, d)
			metrics.ReconcileOutcomes.WithLabelValues(string(d.Kind)).Inc()
			s.log.Infof(ctx, "sync drop user=%s product=%s size=%q kind=%s", userID, req.ProductID, req.Size, d.Kind)
			continue
		}

		finalLines = append(finalLines, domain.CartLine{ProductID: req.ProductID, Size: req.Size, Quantity: capped})
		if capped < req.Quantity {
			d := domain.NewDiagnostic(domain.DiagnosticQuantityAdjusted, req.ProductID, req.Size, capped)
			diagnostics = append(diagnostics, d)
			metrics.ReconcileOutcomes.WithLabelValues(string(domain.DiagnosticQuantityAdjusted)).Inc()
		} else {
			metrics.ReconcileOutcomes.WithLabelValues("kept").Inc()
		}
	}

	if err := s.carts.SaveCart(ctx, userID, finalLines); err != nil {
		s.log.Errorf(ctx, "carts.SaveCart failed user=%s err=%v", userID, err)
		return nil, nil, fmt.Errorf("save cart: %w", err)
	}

	s.log.Infof(ctx, "cart sync user=%s in=%d kept=%d adjusted=%d",
		userID, len(snapshot), len(finalLines), len(diagnostics))

	hydrated, err = s.hydrate(ctx, finalLines)
	if err != nil {
		return nil, nil, err
	}
	return hydrated, diagnostics, nil
}

// diagnosticFor — перевод причины отказа валидатора в диагностику сверки.
func diagnosticFor(err error, req domain.LineRequest) domain.Diagnostic {
	rej, ok := validate.AsRejection(err)
	if !ok {
		return domain.NewDiagnostic(domain.DiagnosticRemovedNonexistent, req.ProductID, req.Size, 0)
	}

	switch rej.Reason {
	case validate.ReasonProductNotFound:
		return domain.NewDiagnostic(domain.DiagnosticRemovedNonexistent, req.ProductID, req.Size, 0)
	case validate.ReasonOutOfStock, validate.ReasonSizeUnavailable:
		return domain.NewDiagnostic(domain.DiagnosticRemovedOutOfStock, req.ProductID, req.Size, 0)
	case validate.ReasonSizeRequired, validate.ReasonSizeNotApplicable:
		return domain.NewDiagnostic(domain.DiagnosticRemovedInvalidSize, req.ProductID, req.Size, 0)
	case validate.ReasonInvalidQuantity:
		return domain.NewDiagnostic(domain.DiagnosticRemovedInvalidQty, req.ProductID, req.Size, 0)
	default:
		return domain.NewDiagnostic(domain.DiagnosticRemovedNonexistent, req.ProductID, req.Size, 0)
	}
}
