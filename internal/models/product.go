package models

import (
	"fmt"
	"time"
)

// ProductMeta holds per-product metadata keyed by meta key, e.g.
// "_affwp_woocommerce_product_rate".
type ProductMeta struct {
	ProductID string            `json:"product_id" bson:"_id"`
	Meta      map[string]string `json:"meta" bson:"meta"`
	UpdatedAt time.Time         `json:"updated_at" bson:"updated_at"`
}

func ProductRateMetaKey(context string) string {
	return fmt.Sprintf("_affwp_%s_product_rate", context)
}
