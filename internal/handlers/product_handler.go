package handlers

import (
	"errors"
	"fmt"
	"log"

	"techstore/internal/models"
	"techstore/internal/repositories"
	"techstore/internal/services"
	"techstore/internal/validation"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// ProductHandler handles HTTP requests for products.
type ProductHandler struct {
	service  *services.ProductService
	validate *validator.Validate
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService) *ProductHandler {
	return &ProductHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the product routes with the Fiber app. The sorted
// list route is registered before /:id so "sort" is never parsed as an ID.
func (h *ProductHandler) RegisterRoutes(router fiber.Router) {
	productRoutes := router.Group("/products")
	productRoutes.Get("/", h.HandleListProducts)
	productRoutes.Get("/sort/:sortType", h.HandleSortedProducts)
	productRoutes.Get("/:id", h.HandleGetProductByID)
	productRoutes.Post("/", h.HandleCreateProduct)
	productRoutes.Put("/:id", h.HandleUpdateProduct)
	productRoutes.Delete("/:id", h.HandleDeleteProduct)
}

// HandleListProducts retrieves products with sorting, category filtering,
// and pagination.
func (h *ProductHandler) HandleListProducts(c *fiber.Ctx) error {
	sortSpec, err := validation.ParseSortBy(c.Query("sort_by", "id"))
	if err != nil {
		return badRequest(c, err)
	}

	window, err := validation.ParsePagination(
		c.QueryInt("skip", 0),
		c.QueryInt("limit", validation.DefaultLimit),
	)
	if err != nil {
		return badRequest(c, err)
	}

	products, err := h.service.ListProducts(repositories.ListQuery{
		Sort:     sortSpec,
		Category: c.Query("category"),
		Skip:     window.Skip,
		Limit:    window.Limit,
	})
	if err != nil {
		return storeFailure(c, "Could not retrieve products", err)
	}
	return c.JSON(products)
}

// HandleSortedProducts retrieves products by one of the fixed sort variants,
// with an optional category filter.
func (h *ProductHandler) HandleSortedProducts(c *fiber.Ctx) error {
	sortSpec, err := validation.ParseSortType(c.Params("sortType"))
	if err != nil {
		return badRequest(c, err)
	}

	products, err := h.service.ListProducts(repositories.ListQuery{
		Sort:     sortSpec,
		Category: c.Query("category"),
	})
	if err != nil {
		return storeFailure(c, "Could not retrieve products", err)
	}
	return c.JSON(products)
}

// HandleGetProductByID retrieves a single product by its ID.
func (h *ProductHandler) HandleGetProductByID(c *fiber.Ctx) error {
	id, err := parseProductID(c)
	if err != nil {
		return badRequest(c, err)
	}

	product, err := h.service.GetProductByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrProductNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Product not found",
			})
		}
		return storeFailure(c, "Could not retrieve product", err)
	}
	return c.JSON(product)
}

// HandleCreateProduct creates a new product.
func (h *ProductHandler) HandleCreateProduct(c *fiber.Ctx) error {
	var input models.ProductInput
	if err := c.BodyParser(&input); err != nil {
		log.Printf("Error parsing create product request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(input); err != nil {
		return validationFailed(c, err)
	}

	product, err := h.service.CreateProduct(input)
	if err != nil {
		if errors.Is(err, repositories.ErrDuplicateName) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Product with this name already exists",
			})
		}
		return storeFailure(c, "Could not create product", err)
	}
	return c.Status(fiber.StatusCreated).JSON(product)
}

// HandleUpdateProduct replaces an existing product's editable fields.
func (h *ProductHandler) HandleUpdateProduct(c *fiber.Ctx) error {
	id, err := parseProductID(c)
	if err != nil {
		return badRequest(c, err)
	}

	var input models.ProductInput
	if err := c.BodyParser(&input); err != nil {
		log.Printf("Error parsing update product request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(input); err != nil {
		return validationFailed(c, err)
	}

	product, err := h.service.UpdateProduct(id, input)
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrProductNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Product not found",
			})
		case errors.Is(err, repositories.ErrDuplicateName):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Another product with this name already exists",
			})
		}
		return storeFailure(c, "Could not update product", err)
	}
	return c.JSON(product)
}

// HandleDeleteProduct deletes a product by its ID.
func (h *ProductHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	id, err := parseProductID(c)
	if err != nil {
		return badRequest(c, err)
	}

	if err := h.service.DeleteProduct(id); err != nil {
		if errors.Is(err, repositories.ErrProductNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Product not found",
			})
		}
		return storeFailure(c, "Could not delete product", err)
	}
	return c.JSON(fiber.Map{
		"message": "Product deleted successfully",
	})
}

// parseProductID reads and validates the :id path parameter.
func parseProductID(c *fiber.Ctx) (uint, error) {
	id, err := c.ParamsInt("id")
	if err != nil {
		return 0, &validation.Error{Message: "product ID must be an integer"}
	}
	if err := validation.ValidateID(id); err != nil {
		return 0, err
	}
	return uint(id), nil
}

// badRequest writes a 400 carrying the validation failure's message.
func badRequest(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"message": err.Error(),
	})
}

// validationFailed writes a 400 with one message per violated field.
func validationFailed(c *fiber.Ctx, err error) error {
	validationErrors := err.(validator.ValidationErrors)
	errorMessages := make(map[string]string)
	for _, e := range validationErrors {
		errorMessages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
	}
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"message": "Validation failed",
		"errors":  errorMessages,
	})
}

// storeFailure logs the full error and writes a generic 503 or 500 body.
// Internal detail never reaches the caller.
func storeFailure(c *fiber.Ctx, message string, err error) error {
	log.Printf("%s: %v", message, err)
	if errors.Is(err, repositories.ErrStoreUnavailable) {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"message": "Database connection unavailable",
		})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"message": "Internal server error",
	})
}
