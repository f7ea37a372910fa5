package service_test

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/linemk/shop-online-api/internal/domain/models"
	"github.com/linemk/shop-online-api/internal/notify"
	"github.com/linemk/shop-online-api/internal/service"
	"github.com/linemk/shop-online-api/internal/storage"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fakeUserRepo struct {
	users  map[int64]*models.User
	nextID int64
}

var _ storage.UserStorage = (*fakeUserRepo)(nil)

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[int64]*models.User)}
}

func (f *fakeUserRepo) CreateUser(ctx context.Context, user *models.User) (*models.User, error) {
	for _, u := range f.users {
		if u.Email == user.Email {
			return nil, &storage.DuplicateError{Table: "users", Column: "email"}
		}
		if u.Username == user.Username {
			return nil, &storage.DuplicateError{Table: "users", Column: "username"}
		}
	}
	f.nextID++
	user.ID = f.nextID
	user.CreatedAt = time.Now()
	f.users[user.ID] = user
	return user, nil
}

func (f *fakeUserRepo) CreateUserTx(ctx context.Context, tx *sql.Tx, user *models.User) (*models.User, error) {
	return f.CreateUser(ctx, user)
}

func (f *fakeUserRepo) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, storage.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, storage.ErrUserNotFound
}

func (f *fakeUserRepo) ListUsers(ctx context.Context) ([]*models.User, error) {
	var users []*models.User
	for _, u := range f.users {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

func (f *fakeUserRepo) UpdateProfile(ctx context.Context, user *models.User) error {
	if _, ok := f.users[user.ID]; !ok {
		return storage.ErrUserNotFound
	}
	for _, u := range f.users {
		if u.ID != user.ID && u.Username == user.Username {
			return &storage.DuplicateError{Table: "users", Column: "username"}
		}
	}
	stored := *user
	f.users[user.ID] = &stored
	return nil
}

func (f *fakeUserRepo) UpdatePassword(ctx context.Context, id int64, passHash []byte) error {
	u, ok := f.users[id]
	if !ok {
		return storage.ErrUserNotFound
	}
	u.PassHash = passHash
	return nil
}

func (f *fakeUserRepo) SetActive(ctx context.Context, id int64, active bool) error {
	u, ok := f.users[id]
	if !ok {
		return storage.ErrUserNotFound
	}
	u.IsActive = active
	return nil
}

func (f *fakeUserRepo) DeleteUser(ctx context.Context, id int64) error {
	if _, ok := f.users[id]; !ok {
		return storage.ErrUserNotFound
	}
	delete(f.users, id)
	return nil
}

type fakeShopRepo struct {
	shops  map[int64]*models.Shop
	nextID int64
}

var _ storage.ShopStorage = (*fakeShopRepo)(nil)

func newFakeShopRepo() *fakeShopRepo {
	return &fakeShopRepo{shops: make(map[int64]*models.Shop)}
}

func (f *fakeShopRepo) CreateShopTx(ctx context.Context, tx *sql.Tx, shop *models.Shop) (*models.Shop, error) {
	for _, s := range f.shops {
		if s.ShopName == shop.ShopName {
			return nil, &storage.DuplicateError{Table: "shops", Column: "shop_name"}
		}
	}
	f.nextID++
	shop.ID = f.nextID
	f.shops[shop.ID] = shop
	return shop, nil
}

func (f *fakeShopRepo) GetShopBySlug(ctx context.Context, slug string) (*models.Shop, error) {
	for _, s := range f.shops {
		if s.Slug == slug {
			return s, nil
		}
	}
	return nil, storage.ErrShopNotFound
}

func (f *fakeShopRepo) GetShopByUserID(ctx context.Context, userID int64) (*models.Shop, error) {
	for _, s := range f.shops {
		if s.UserID == userID {
			return s, nil
		}
	}
	return nil, storage.ErrShopNotFound
}

func (f *fakeShopRepo) ListShops(ctx context.Context, approvedOnly bool) ([]*models.Shop, error) {
	var shops []*models.Shop
	for _, s := range f.shops {
		if !approvedOnly || s.IsApproved {
			shops = append(shops, s)
		}
	}
	sort.Slice(shops, func(i, j int) bool { return shops[i].ID < shops[j].ID })
	return shops, nil
}

func (f *fakeShopRepo) SlugExists(ctx context.Context, slug string) (bool, error) {
	_, err := f.GetShopBySlug(ctx, slug)
	return err == nil, nil
}

func (f *fakeShopRepo) ApproveShop(ctx context.Context, id int64) error {
	s, ok := f.shops[id]
	if !ok {
		return storage.ErrShopNotFound
	}
	s.IsApproved = true
	return nil
}

type fakeCategoryRepo struct {
	categories map[int64]*models.Category
	nextID     int64
}

var _ storage.CategoryStorage = (*fakeCategoryRepo)(nil)

func newFakeCategoryRepo() *fakeCategoryRepo {
	return &fakeCategoryRepo{categories: make(map[int64]*models.Category)}
}

func (f *fakeCategoryRepo) CreateCategory(ctx context.Context, c *models.Category) (*models.Category, error) {
	for _, existing := range f.categories {
		if existing.ShopID == c.ShopID && existing.Name == c.Name {
			return nil, &storage.DuplicateError{Table: "categories", Column: "name"}
		}
	}
	f.nextID++
	c.ID = f.nextID
	f.categories[c.ID] = c
	return c, nil
}

func (f *fakeCategoryRepo) GetCategoryBySlug(ctx context.Context, slug string) (*models.Category, error) {
	for _, c := range f.categories {
		if c.Slug == slug {
			return c, nil
		}
	}
	return nil, storage.ErrCategoryNotFound
}

func (f *fakeCategoryRepo) GetCategoryBySlugAndShop(ctx context.Context, shopID int64, slug string) (*models.Category, error) {
	for _, c := range f.categories {
		if c.ShopID == shopID && c.Slug == slug {
			return c, nil
		}
	}
	return nil, storage.ErrCategoryNotFound
}

func (f *fakeCategoryRepo) ListCategoriesByShop(ctx context.Context, shopID int64) ([]*models.Category, error) {
	var list []*models.Category
	for _, c := range f.categories {
		if c.ShopID == shopID {
			list = append(list, c)
		}
	}
	return list, nil
}

func (f *fakeCategoryRepo) SlugExists(ctx context.Context, slug string) (bool, error) {
	_, err := f.GetCategoryBySlug(ctx, slug)
	return err == nil, nil
}

func (f *fakeCategoryRepo) DeleteCategory(ctx context.Context, id int64) error {
	if _, ok := f.categories[id]; !ok {
		return storage.ErrCategoryNotFound
	}
	delete(f.categories, id)
	return nil
}

type fakeItemRepo struct {
	items  map[int64]*models.Item
	nextID int64
}

var _ storage.ItemStorage = (*fakeItemRepo)(nil)

func newFakeItemRepo() *fakeItemRepo {
	return &fakeItemRepo{items: make(map[int64]*models.Item)}
}

func (f *fakeItemRepo) add(item *models.Item) *models.Item {
	f.nextID++
	item.ID = f.nextID
	f.items[item.ID] = item
	return item
}

func (f *fakeItemRepo) CreateItem(ctx context.Context, item *models.Item) (*models.Item, error) {
	for _, existing := range f.items {
		if existing.ShopID == item.ShopID && existing.Name == item.Name {
			return nil, &storage.DuplicateError{Table: "items", Column: "name"}
		}
	}
	return f.add(item), nil
}

func (f *fakeItemRepo) UpdateItem(ctx context.Context, item *models.Item) error {
	if _, ok := f.items[item.ID]; !ok {
		return storage.ErrItemNotFound
	}
	for _, existing := range f.items {
		if existing.ID != item.ID && existing.ShopID == item.ShopID && existing.Name == item.Name {
			return &storage.DuplicateError{Table: "items", Column: "name"}
		}
	}
	stored := *item
	f.items[item.ID] = &stored
	return nil
}

func (f *fakeItemRepo) DeleteItem(ctx context.Context, id int64) error {
	if _, ok := f.items[id]; !ok {
		return storage.ErrItemNotFound
	}
	delete(f.items, id)
	return nil
}

func (f *fakeItemRepo) GetItemByID(ctx context.Context, id int64) (*models.Item, error) {
	item, ok := f.items[id]
	if !ok {
		return nil, storage.ErrItemNotFound
	}
	copied := *item
	return &copied, nil
}

func (f *fakeItemRepo) GetItemBySlug(ctx context.Context, slug string) (*models.Item, error) {
	for _, item := range f.items {
		if item.Slug == slug {
			copied := *item
			return &copied, nil
		}
	}
	return nil, storage.ErrItemNotFound
}

func (f *fakeItemRepo) GetItemBySlugForShop(ctx context.Context, shopID int64, slug string) (*models.Item, error) {
	item, err := f.GetItemBySlug(ctx, slug)
	if err != nil || item.ShopID != shopID {
		return nil, storage.ErrItemNotFound
	}
	return item, nil
}

func (f *fakeItemRepo) ListItemsByShop(ctx context.Context, shopID int64) ([]*models.Item, error) {
	var list []*models.Item
	for _, item := range f.items {
		if item.ShopID == shopID {
			list = append(list, item)
		}
	}
	return list, nil
}

func (f *fakeItemRepo) ListItemsByCategory(ctx context.Context, categoryID int64) ([]*models.Item, error) {
	var list []*models.Item
	for _, item := range f.items {
		if item.CategoryID == categoryID {
			list = append(list, item)
		}
	}
	return list, nil
}

func (f *fakeItemRepo) SlugExists(ctx context.Context, slug string) (bool, error) {
	_, err := f.GetItemBySlug(ctx, slug)
	return err == nil, nil
}

type fakeCartRepo struct {
	items    *fakeItemRepo
	rows     []*models.CartItem
	nextID   int64
	cleared  bool
	clearErr error
	// afterList срабатывает после чтения корзины
	afterList func()
}

var _ storage.CartStorage = (*fakeCartRepo)(nil)

func (f *fakeCartRepo) UpsertCartItem(ctx context.Context, userID, itemID int64, quantity int) (*models.CartItem, error) {
	for _, ci := range f.rows {
		if ci.UserID == userID && ci.ItemID == itemID {
			ci.Quantity = quantity
			return ci, nil
		}
	}
	item := f.items.items[itemID]
	f.nextID++
	ci := &models.CartItem{
		ID: f.nextID, UserID: userID, ItemID: itemID, Quantity: quantity,
		ItemName: item.Name, ItemSlug: item.Slug, ShopID: item.ShopID, ItemPrice: item.Price,
	}
	f.rows = append(f.rows, ci)
	return ci, nil
}

func (f *fakeCartRepo) GetCartItem(ctx context.Context, userID, itemID int64) (*models.CartItem, error) {
	for _, ci := range f.rows {
		if ci.UserID == userID && ci.ItemID == itemID {
			return ci, nil
		}
	}
	return nil, storage.ErrCartItemNotFound
}

func (f *fakeCartRepo) GetCartItemByID(ctx context.Context, id int64) (*models.CartItem, error) {
	for _, ci := range f.rows {
		if ci.ID == id {
			return ci, nil
		}
	}
	return nil, storage.ErrCartItemNotFound
}

func (f *fakeCartRepo) ListCartItems(ctx context.Context, userID int64) ([]*models.CartItem, error) {
	var list []*models.CartItem
	for _, ci := range f.rows {
		if ci.UserID == userID {
			cp := *ci
			list = append(list, &cp)
		}
	}
	if f.afterList != nil {
		f.afterList()
	}
	return list, nil
}

func (f *fakeCartRepo) remove(match func(*models.CartItem) bool) bool {
	for i, ci := range f.rows {
		if match(ci) {
			f.rows = append(f.rows[:i], f.rows[i+1:]...)
			return true
		}
	}
	return false
}

func (f *fakeCartRepo) DeleteCartItem(ctx context.Context, userID, itemID int64) error {
	if !f.remove(func(ci *models.CartItem) bool { return ci.UserID == userID && ci.ItemID == itemID }) {
		return storage.ErrCartItemNotFound
	}
	return nil
}

func (f *fakeCartRepo) DeleteCartItemByID(ctx context.Context, id int64) error {
	if !f.remove(func(ci *models.CartItem) bool { return ci.ID == id }) {
		return storage.ErrCartItemNotFound
	}
	return nil
}

func (f *fakeCartRepo) DeleteCartLinesTx(ctx context.Context, tx *sql.Tx, userID int64, lines []*models.CartItem) error {
	if f.clearErr != nil {
		return f.clearErr
	}
	read := make(map[int64]int, len(lines))
	for _, line := range lines {
		read[line.ID] = line.Quantity
	}
	var kept []*models.CartItem
	for _, ci := range f.rows {
		if q, ok := read[ci.ID]; !ok || ci.UserID != userID || ci.Quantity != q {
			kept = append(kept, ci)
		}
	}
	f.rows = kept
	f.cleared = true
	return nil
}

type wishKey struct{ userID, itemID int64 }

type fakeWishListRepo struct {
	items *fakeItemRepo
	rows  map[wishKey]bool
}

var _ storage.WishListStorage = (*fakeWishListRepo)(nil)

func (f *fakeWishListRepo) ToggleWishList(ctx context.Context, userID, itemID int64) (bool, error) {
	key := wishKey{userID, itemID}
	if f.rows[key] {
		delete(f.rows, key)
		return false, nil
	}
	f.rows[key] = true
	return true, nil
}

func (f *fakeWishListRepo) ListWishListItems(ctx context.Context, userID int64) ([]*models.Item, error) {
	var list []*models.Item
	for key := range f.rows {
		if key.userID == userID {
			list = append(list, f.items.items[key.itemID])
		}
	}
	return list, nil
}

type fakeOrderRepo struct {
	orders     map[int64]*models.Order
	orderItems []models.OrderItem
	nextID     int64
}

var _ storage.OrderStorage = (*fakeOrderRepo)(nil)

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: make(map[int64]*models.Order)}
}

func (f *fakeOrderRepo) CreateOrderTx(ctx context.Context, tx *sql.Tx, order *models.Order) (*models.Order, error) {
	f.nextID++
	order.ID = f.nextID
	order.CreatedAt = time.Now()
	stored := *order
	f.orders[order.ID] = &stored
	return order, nil
}

func (f *fakeOrderRepo) CreateOrderItemTx(ctx context.Context, tx *sql.Tx, item *models.OrderItem) error {
	item.ID = int64(len(f.orderItems) + 1)
	f.orderItems = append(f.orderItems, *item)
	return nil
}

func (f *fakeOrderRepo) GetOrderByID(ctx context.Context, id int64) (*models.Order, error) {
	o, ok := f.orders[id]
	if !ok {
		return nil, storage.ErrOrderNotFound
	}
	copied := *o
	return &copied, nil
}

func (f *fakeOrderRepo) GetOrderByKey(ctx context.Context, key string) (*models.Order, error) {
	for _, o := range f.orders {
		if o.OrderKey == key {
			copied := *o
			return &copied, nil
		}
	}
	return nil, storage.ErrOrderNotFound
}

func (f *fakeOrderRepo) ListOrderItems(ctx context.Context, orderID int64) ([]models.OrderItem, error) {
	var list []models.OrderItem
	for _, oi := range f.orderItems {
		if oi.OrderID == orderID {
			list = append(list, oi)
		}
	}
	return list, nil
}

func (f *fakeOrderRepo) ListPaidOrdersByUser(ctx context.Context, userID int64) ([]*models.Order, error) {
	var list []*models.Order
	for _, o := range f.orders {
		if o.UserID == userID && o.BillingStatus {
			list = append(list, o)
		}
	}
	return list, nil
}

func (f *fakeOrderRepo) MarkOrderPaidTx(ctx context.Context, tx *sql.Tx, orderID int64) error {
	o, ok := f.orders[orderID]
	if !ok {
		return storage.ErrOrderNotFound
	}
	o.BillingStatus = true
	return nil
}

func (f *fakeOrderRepo) UserBoughtItem(ctx context.Context, userID, itemID int64) (bool, error) {
	for _, oi := range f.orderItems {
		o := f.orders[oi.OrderID]
		if oi.ItemID == itemID && o.UserID == userID && o.BillingStatus {
			return true, nil
		}
	}
	return false, nil
}

type fakeShopOrderRepo struct {
	orders    []*models.ShopOrder
	sold      []models.SoldItem
	customers []*models.User
	revenue   decimal.Decimal
	nextID    int64
}

var _ storage.ShopOrderStorage = (*fakeShopOrderRepo)(nil)

func (f *fakeShopOrderRepo) CreateShopOrderTx(ctx context.Context, tx *sql.Tx, so *models.ShopOrder) (*models.ShopOrder, error) {
	f.nextID++
	so.ID = f.nextID
	f.orders = append(f.orders, so)
	return so, nil
}

func (f *fakeShopOrderRepo) MarkPaidByOrderTx(ctx context.Context, tx *sql.Tx, orderID int64) error {
	for _, so := range f.orders {
		if so.OrderID == orderID {
			so.BillingStatus = true
		}
	}
	return nil
}

func (f *fakeShopOrderRepo) ListPaidShopOrders(ctx context.Context, shopID int64) ([]*models.ShopOrder, error) {
	var list []*models.ShopOrder
	for _, so := range f.orders {
		if so.ShopID == shopID && so.BillingStatus {
			list = append(list, so)
		}
	}
	return list, nil
}

func (f *fakeShopOrderRepo) GetPaidShopOrder(ctx context.Context, shopID, id int64) (*models.ShopOrder, error) {
	for _, so := range f.orders {
		if so.ID == id && so.ShopID == shopID && so.BillingStatus {
			return so, nil
		}
	}
	return nil, storage.ErrShopOrderNotFound
}

func (f *fakeShopOrderRepo) ListPaidShopOrdersByCustomer(ctx context.Context, shopID, userID int64) ([]*models.ShopOrder, error) {
	var list []*models.ShopOrder
	for _, so := range f.orders {
		if so.ShopID == shopID && so.UserID == userID && so.BillingStatus {
			list = append(list, so)
		}
	}
	return list, nil
}

func (f *fakeShopOrderRepo) ListShopCustomers(ctx context.Context, shopID int64) ([]*models.User, error) {
	return f.customers, nil
}

func (f *fakeShopOrderRepo) GetShopOrderByID(ctx context.Context, id int64) (*models.ShopOrder, error) {
	for _, so := range f.orders {
		if so.ID == id {
			return so, nil
		}
	}
	return nil, storage.ErrShopOrderNotFound
}

func (f *fakeShopOrderRepo) UpdateShopOrderStatus(ctx context.Context, id int64, status models.OrderStatus) error {
	so, err := f.GetShopOrderByID(ctx, id)
	if err != nil {
		return err
	}
	so.Status = status
	return nil
}

func (f *fakeShopOrderRepo) SumRevenue(ctx context.Context, shopID int64) (decimal.Decimal, error) {
	return f.revenue, nil
}

func (f *fakeShopOrderRepo) SumRevenueBetween(ctx context.Context, shopID int64, from, to time.Time) (decimal.Decimal, error) {
	return f.revenue, nil
}

func (f *fakeShopOrderRepo) ListSoldItems(ctx context.Context, shopID int64) ([]models.SoldItem, error) {
	return f.sold, nil
}

type fakeReviewRepo struct {
	reviews map[int64]*models.ItemReview
	nextID  int64
}

var _ storage.ReviewStorage = (*fakeReviewRepo)(nil)

func newFakeReviewRepo() *fakeReviewRepo {
	return &fakeReviewRepo{reviews: make(map[int64]*models.ItemReview)}
}

func (f *fakeReviewRepo) CreateReview(ctx context.Context, review *models.ItemReview) (*models.ItemReview, error) {
	for _, r := range f.reviews {
		if r.ItemID == review.ItemID && r.UserID == review.UserID {
			return nil, &storage.DuplicateError{Table: "item_reviews", Column: "user_id"}
		}
	}
	f.nextID++
	review.ID = f.nextID
	f.reviews[review.ID] = review
	return review, nil
}

func (f *fakeReviewRepo) GetReviewByID(ctx context.Context, id int64) (*models.ItemReview, error) {
	r, ok := f.reviews[id]
	if !ok {
		return nil, storage.ErrReviewNotFound
	}
	return r, nil
}

func (f *fakeReviewRepo) ListReviewsByItem(ctx context.Context, itemID int64) ([]*models.ItemReview, error) {
	var list []*models.ItemReview
	for _, r := range f.reviews {
		if r.ItemID == itemID {
			list = append(list, r)
		}
	}
	return list, nil
}

func (f *fakeReviewRepo) DeleteReview(ctx context.Context, id int64) error {
	if _, ok := f.reviews[id]; !ok {
		return storage.ErrReviewNotFound
	}
	delete(f.reviews, id)
	return nil
}

type fakeNewsLetterRepo struct {
	rows   []*models.NewsLetter
	nextID int64
}

var _ storage.NewsLetterStorage = (*fakeNewsLetterRepo)(nil)

func (f *fakeNewsLetterRepo) CreateSubscription(ctx context.Context, email string) (*models.NewsLetter, error) {
	f.nextID++
	nl := &models.NewsLetter{ID: f.nextID, Email: email}
	f.rows = append(f.rows, nl)
	return nl, nil
}

func (f *fakeNewsLetterRepo) ActiveExists(ctx context.Context, email string) (bool, error) {
	for _, nl := range f.rows {
		if nl.Email == email && nl.IsActive {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeNewsLetterRepo) Activate(ctx context.Context, email string) error {
	for i := len(f.rows) - 1; i >= 0; i-- {
		nl := f.rows[i]
		if nl.Email == email && !nl.IsActive {
			if active, _ := f.ActiveExists(ctx, email); active {
				return &storage.DuplicateError{Table: "newsletters", Column: "email"}
			}
			nl.IsActive = true
			return nil
		}
	}
	return storage.ErrNewsletterNotFound
}

func (f *fakeNewsLetterRepo) Deactivate(ctx context.Context, email string) error {
	changed := false
	for _, nl := range f.rows {
		if nl.Email == email && nl.IsActive {
			nl.IsActive = false
			changed = true
		}
	}
	if !changed {
		return storage.ErrNewsletterNotFound
	}
	return nil
}

func (f *fakeNewsLetterRepo) GetSubscriptionByID(ctx context.Context, id int64) (*models.NewsLetter, error) {
	for _, nl := range f.rows {
		if nl.ID == id {
			return nl, nil
		}
	}
	return nil, storage.ErrNewsletterNotFound
}

func (f *fakeNewsLetterRepo) ListSubscriptions(ctx context.Context) ([]*models.NewsLetter, error) {
	return f.rows, nil
}

func (f *fakeNewsLetterRepo) DeleteSubscription(ctx context.Context, id int64) error {
	for i, nl := range f.rows {
		if nl.ID == id {
			f.rows = append(f.rows[:i], f.rows[i+1:]...)
			return nil
		}
	}
	return storage.ErrNewsletterNotFound
}

// fakeNotifier записывает отправленные письма; fail имитирует недоступный провайдер
type fakeNotifier struct {
	sent []string
	fail bool
}

var _ service.Notifier = (*fakeNotifier)(nil)

func (f *fakeNotifier) result(kind string) notify.Result {
	if f.fail {
		return notify.Result{Err: notify.ErrMissingAPIKey}
	}
	f.sent = append(f.sent, kind)
	return notify.Result{Delivered: true}
}

func (f *fakeNotifier) SendActivation(ctx context.Context, user *models.User) notify.Result {
	return f.result(notify.KindActivation)
}

func (f *fakeNotifier) SendPasswordReset(ctx context.Context, user *models.User) notify.Result {
	return f.result(notify.KindPasswordReset)
}

func (f *fakeNotifier) SendNewsletterActivation(ctx context.Context, email string) notify.Result {
	return f.result(notify.KindNewsletterActivation)
}

func (f *fakeNotifier) SendStatusUpdated(ctx context.Context, email string, so *models.ShopOrder) notify.Result {
	return f.result(notify.KindStatusUpdated)
}

func (f *fakeNotifier) SendOrderConfirmation(ctx context.Context, email string, order *models.Order) notify.Result {
	return f.result(notify.KindOrderConfirmation)
}
