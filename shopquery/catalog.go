package shopquery

import (
	"context"

	"github.com/essience-store/storefront-api/models"
)

const masterCategoriesQuery = `
  query GetMasterCategories($filter: MasterCategoryInput) {
    masterCategories(filter: $filter) {
      id
      category
      image
    }
  }`

const productsByCategoryQuery = `
  query ProductsByCategory($filter: CategoryWiseFilter) {
    productsByCategory(filter: $filter) {
      id
      name
      prize
      featureImage
    }
  }`

const orderHistoryQuery = `
  query GetOrderHistory($filter: orderFilter) {
    orderHistory(filter: $filter) {
      id
      timestamp
      orderdetails {
        status
        totalPrice
        Products {
          name
        }
      }
    }
  }`

const orderByCartMutation = `
  mutation OrderByCart($userId: Int, $shopId: Int, $customerName: String, $customerMobile: String, $paymentInfo: String, $voucherNo: String) {
    OrderbyCart(userId: $userId, shopId: $shopId, customerName: $customerName, customerMobile: $customerMobile, paymentInfo: $paymentInfo, voucherNo: $voucherNo) {
      id
      customerName
    }
  }`

// Categories returns the shop's master categories.
func (c *Client) Categories(ctx context.Context, shopID string) ([]models.Category, error) {
	var payload struct {
		Categories []models.Category `json:"masterCategories"`
	}
	err := c.run(ctx, masterCategoriesQuery, map[string]any{
		"filter": map[string]any{"shopId": shopID},
	}, &payload)
	if err != nil {
		return nil, err
	}
	return payload.Categories, nil
}

// ProductsByCategory returns raw catalog records; normalization to the
// canonical snapshot happens in models, not here.
func (c *Client) ProductsByCategory(ctx context.Context, shopID, categoryID string) ([]models.RawProduct, error) {
	var payload struct {
		Products []models.RawProduct `json:"productsByCategory"`
	}
	err := c.run(ctx, productsByCategoryQuery, map[string]any{
		"filter": map[string]any{"shopId": shopID, "categoryId": categoryID},
	}, &payload)
	if err != nil {
		return nil, err
	}
	return payload.Products, nil
}

type orderHistoryRow struct {
	ID           models.ProductID `json:"id"`
	Timestamp    string           `json:"timestamp"`
	OrderDetails []struct {
		Status     string  `json:"status"`
		TotalPrice float64 `json:"totalPrice"`
		Products   []struct {
			Name string `json:"name"`
		} `json:"Products"`
	} `json:"orderdetails"`
}

// OrderHistory returns the user's past orders, flattened into the shape the
// presentation layer renders.
func (c *Client) OrderHistory(ctx context.Context, userID string) ([]models.RemoteOrder, error) {
	var payload struct {
		Rows []orderHistoryRow `json:"orderHistory"`
	}
	err := c.run(ctx, orderHistoryQuery, map[string]any{
		"filter": map[string]any{"userId": userID},
	}, &payload)
	if err != nil {
		return nil, err
	}

	orders := make([]models.RemoteOrder, 0, len(payload.Rows))
	for _, row := range payload.Rows {
		order := models.RemoteOrder{ID: row.ID, Timestamp: row.Timestamp}
		for _, d := range row.OrderDetails {
			order.Status = d.Status
			order.Total += d.TotalPrice
			for _, p := range d.Products {
				order.Products = append(order.Products, p.Name)
			}
		}
		orders = append(orders, order)
	}
	return orders, nil
}

// SubmitOrder posts the checkout mutation for the user's server-side cart.
// The local order record is created optimistically before this call; the
// caller rolls it back when this fails.
func (c *Client) SubmitOrder(ctx context.Context, shopID, userID, customerName, customerMobile, voucherNo string) error {
	var payload struct {
		Order struct {
			ID models.ProductID `json:"id"`
		} `json:"OrderbyCart"`
	}
	return c.run(ctx, orderByCartMutation, map[string]any{
		"userId":         userID,
		"shopId":         shopID,
		"customerName":   customerName,
		"customerMobile": customerMobile,
		"paymentInfo":    "cod",
		"voucherNo":      voucherNo,
	}, &payload)
}
